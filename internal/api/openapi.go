package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/image-forge/internal/conversion"
	"github.com/JaimeStill/image-forge/internal/history"
	"github.com/JaimeStill/image-forge/pkg/handlers"
	"github.com/JaimeStill/image-forge/pkg/openapi"
	"github.com/JaimeStill/image-forge/pkg/routes"
)

type spec struct {
	Convert  *openapi.Operation
	Favicons *openapi.Operation
	Formats  *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the conversion endpoints.
var Spec = spec{
	Convert: &openapi.Operation{
		Summary:     "Convert images",
		Description: "Converts every selected image in place and returns the batch report. Failed files leave their source untouched.",
		RequestBody: openapi.RequestBodyJSON("ConvertRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Batch report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			415: openapi.ResponseRef("UnsupportedMediaType"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Favicons: &openapi.Operation{
		Summary:     "Generate favicon sets",
		Description: "Writes a favicon set beside every selected image. Sources are kept.",
		RequestBody: openapi.RequestBodyJSON("FaviconRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Batch report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			415: openapi.ResponseRef("UnsupportedMediaType"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Formats: &openapi.Operation{
		Summary:     "List formats",
		Description: "Returns the accepted input extensions, producible outputs and favicon defaults",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Format capabilities", "FormatInfo"),
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func (spec) Schemas() map[string]*openapi.Schema {
	one, hundred := 1, 100

	return map[string]*openapi.Schema{
		"Selection": {
			Type:        "object",
			Description: "paths wins over primary, primary wins over active",
			Properties: map[string]*openapi.Schema{
				"primary": {Type: "string"},
				"paths":   openapi.ArrayOf("string"),
				"active":  {Type: "string"},
			},
		},
		"ConversionOptions": {
			Type:     "object",
			Required: []string{"format"},
			Properties: map[string]*openapi.Schema{
				"format":     {Type: "string", Enum: []string{"webp", "jpg", "png"}},
				"max_width":  {Type: "integer", Description: "0 leaves the width unconstrained"},
				"max_height": {Type: "integer", Description: "0 leaves the height unconstrained"},
				"quality":    {Type: "integer", Minimum: &one, Maximum: &hundred},
			},
		},
		"FaviconOptions": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"sizes":   {Type: "array", Items: &openapi.Schema{Type: "integer"}, Example: conversion.DefaultFaviconSizes},
				"format":  {Type: "string", Enum: []string{"png", "ico"}},
				"quality": {Type: "integer", Minimum: &one, Maximum: &hundred},
			},
		},
		"ConvertRequest": {
			Type:     "object",
			Required: []string{"selection", "options"},
			Properties: map[string]*openapi.Schema{
				"selection": openapi.SchemaRef("Selection"),
				"options":   openapi.SchemaRef("ConversionOptions"),
			},
		},
		"FaviconRequest": {
			Type:     "object",
			Required: []string{"selection"},
			Properties: map[string]*openapi.Schema{
				"selection": openapi.SchemaRef("Selection"),
				"options":   openapi.SchemaRef("FaviconOptions"),
			},
		},
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"operation":   {Type: "string", Enum: []string{conversion.OperationConvert, conversion.OperationFavicons}},
				"started_at":  {Type: "string", Format: "date-time"},
				"finished_at": {Type: "string", Format: "date-time"},
				"successes":   openapi.ArrayOfRef("Success"),
				"failures":    openapi.ArrayOfRef("Failure"),
			},
		},
		"Success": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"source":  {Type: "string"},
				"outputs": openapi.ArrayOf("string"),
			},
		},
		"Failure": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"source":  {Type: "string"},
				"message": {Type: "string"},
			},
		},
		"FormatInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"inputs":          openapi.ArrayOf("string"),
				"targets":         openapi.ArrayOf("string"),
				"favicon_formats": openapi.ArrayOf("string"),
				"favicon_sizes":   openapi.ArrayOf("integer"),
				"default_quality": {Type: "integer"},
			},
		},
	}
}

// buildSpec documents every route in groups that carries an operation.
func buildSpec(cfg *openapi.Config, basePath string, groups []routes.Group) *openapi.Spec {
	components := openapi.NewComponents()
	components.AddSchemas(Spec.Schemas())
	components.AddSchemas(history.Spec.Schemas())

	doc := openapi.NewSpec(cfg, components)
	doc.Servers = []*openapi.Server{{URL: basePath}}

	routes.Walk("", groups, func(path string, tags []string, route routes.Route) {
		if route.OpenAPI == nil {
			return
		}
		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		doc.AddOperation(path, strings.ToUpper(route.Method), &op)
	})

	return doc
}

// openapiRoutes serves the rendered document.
func openapiRoutes(doc *openapi.Spec, logger *slog.Logger) routes.Group {
	data, err := openapi.MarshalJSON(doc)

	return routes.Group{
		Description: "API description",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/openapi.json", Handler: func(w http.ResponseWriter, r *http.Request) {
				if err != nil {
					handlers.RespondError(w, logger, http.StatusInternalServerError, err)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(data)
			}},
		},
	}
}
