package openapi

import "maps"

// NewComponents seeds the shared schemas, auth schemes and error responses
// every domain references.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number, starting at 1", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Free text filter"},
					"sort":      {Type: "string", Description: "Comma-separated fields, - prefix for descending, e.g. -recorded_at"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"cookieAuth": {Type: "apiKey", In: "cookie", Name: "token"},
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
		Responses: map[string]*Response{
			"BadRequest":         errorResponse("Invalid request"),
			"Unauthorized":       errorResponse("Missing or invalid credentials"),
			"NotFound":           errorResponse("Resource not found"),
			"Conflict":           errorResponse("Resource conflict"),
			"ServiceUnavailable": errorResponse("A required upstream service is unavailable"),
		},
	}
}

func errorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}

func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
