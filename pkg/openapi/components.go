package openapi

// Components holds reusable schemas and responses.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// NewComponents returns components preloaded with the error envelope and
// the shared error responses handlers reference by name.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":           errorResponse("Invalid request body or options"),
			"Forbidden":            errorResponse("Request origin not allowed"),
			"NotFound":             errorResponse("Resource not found"),
			"Conflict":             errorResponse("Resource already exists"),
			"PayloadTooLarge":      errorResponse("Input exceeds the configured size limit"),
			"UnsupportedMediaType": errorResponse("Body is not application/json"),
			"UnprocessableEntity":  errorResponse("No supported image files selected"),
			"ServiceUnavailable":   errorResponse("Dependency not configured or not ready"),
		},
	}
}

// AddSchemas merges schemas into the component set, replacing same-named entries.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the component set, replacing same-named entries.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}
