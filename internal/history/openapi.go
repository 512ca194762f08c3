package history

import "github.com/JaimeStill/image-forge/pkg/openapi"

type spec struct {
	List *openapi.Operation
	Find *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the history endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List batches",
		Description: "Returns recorded batch reports, newest first unless sorted otherwise",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("operation", "string", "Filter by operation (convert or favicons)", false),
			openapi.QueryParam("failed", "boolean", "Only batches with at least one failure", false),
			openapi.QueryParam("since", "string", "Only batches started at or after this RFC 3339 time", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of batches", "BatchPageResult"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get batch by ID",
		Description: "Returns one batch with the outcome of every file",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "uuid", "Batch UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Batch with files", "Batch"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Batch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"operation":   {Type: "string", Enum: []string{"convert", "favicons"}},
				"total":       {Type: "integer"},
				"succeeded":   {Type: "integer"},
				"failed":      {Type: "integer"},
				"started_at":  {Type: "string", Format: "date-time"},
				"finished_at": {Type: "string", Format: "date-time"},
				"files":       openapi.ArrayOfRef("BatchFile"),
			},
		},
		"BatchFile": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"source":  {Type: "string"},
				"outputs": openapi.ArrayOf("string"),
				"error":   {Type: "string", Description: "Empty when the file succeeded"},
			},
		},
		"BatchPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOfRef("Batch"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
