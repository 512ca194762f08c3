// Package routes describes HTTP routes as data and registers them on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/image-forge/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Route represents an HTTP route with method, pattern, and handler.
// OpenAPI is optional; routes without it are left out of the document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
