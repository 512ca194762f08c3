// Package openapi builds OpenAPI 3.1 documents from route metadata. Handlers
// attach an Operation to each route and the API assembles the document at
// startup.
package openapi

// Version is the OpenAPI version emitted by NewSpec.
const Version = "3.1.0"

// Spec is an OpenAPI document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server is a base URL the API is reachable at.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// PathItem holds the operations on one path.
type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

// Operation describes a single method on a path.
type Operation struct {
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Parameters  []*Parameter      `json:"parameters,omitempty"`
	RequestBody *RequestBody      `json:"requestBody,omitempty"`
	Responses   map[int]*Response `json:"responses"`
}

// Parameter is a path or query parameter.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Required    bool    `json:"required,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema"`
}

// RequestBody describes an operation's body.
type RequestBody struct {
	Description string                `json:"description,omitempty"`
	Required    bool                  `json:"required,omitempty"`
	Content     map[string]*MediaType `json:"content"`
}

// Response describes one status code of an operation, or references a
// shared response in components.
type Response struct {
	Description string                `json:"description,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
	Ref         string                `json:"$ref,omitempty"`
}

// MediaType binds a schema to a content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema describes a value. Properties, Items and Enum apply to object,
// array and string schemas respectively.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Minimum     *int               `json:"minimum,omitempty"`
	Maximum     *int               `json:"maximum,omitempty"`
	Example     any                `json:"example,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
}

// NewSpec returns an empty document for the API described by cfg.
func NewSpec(cfg *Config, components *Components) *Spec {
	return &Spec{
		OpenAPI: Version,
		Info: &Info{
			Title:       cfg.Title,
			Version:     cfg.Version,
			Description: cfg.Description,
		},
		Paths:      make(map[string]*PathItem),
		Components: components,
	}
}

// AddOperation attaches op to path under method. Unknown methods are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case "GET":
		item.Get = op
	case "POST":
		item.Post = op
	case "PUT":
		item.Put = op
	case "DELETE":
		item.Delete = op
	}
}

// SchemaRef references a schema in components/schemas.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef references a response in components/responses.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// RequestBodyJSON is a required-or-optional JSON body referencing schemaName.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef(schemaName)},
		},
	}
}

// ResponseJSON is a JSON response referencing schemaName.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef(schemaName)},
		},
	}
}

// PathParam is a required string path parameter with the given format.
func PathParam(name, format, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string", Format: format},
	}
}

// QueryParam is a query parameter of type typ.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}

// ArrayOf is an array schema whose items are itemType.
func ArrayOf(itemType string) *Schema {
	return &Schema{Type: "array", Items: &Schema{Type: itemType}}
}

// ArrayOfRef is an array schema whose items reference schemaName.
func ArrayOfRef(schemaName string) *Schema {
	return &Schema{Type: "array", Items: SchemaRef(schemaName)}
}
