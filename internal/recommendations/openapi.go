package recommendations

import (
	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

var ops = struct {
	list, find, create, delete *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List recommendations",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("mood", "string", "Mood label filter", false),
			openapi.QueryParam("type", "string", "Activity type filter", false),
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search content and description", false),
			openapi.QueryParam("sort", "string", "Sort fields", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recommendation page", "RecommendationPage"),
		},
	},
	find: &openapi.Operation{
		Summary:    "Find a recommendation",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Recommendation ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recommendation", "Recommendation"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Create a recommendation",
		RequestBody: openapi.RequestBodyJSON("CreateRecommendation", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created recommendation", "Recommendation"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	delete: &openapi.Operation{
		Summary:    "Delete a recommendation",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Recommendation ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas referenced by recommendation operations.
func Schemas() (map[string]*openapi.Schema, error) {
	rec, err := openapi.SchemaOf[Recommendation]()
	if err != nil {
		return nil, err
	}
	page, err := openapi.SchemaOf[pagination.PageResult[Recommendation]]()
	if err != nil {
		return nil, err
	}
	create, err := openapi.SchemaOf[CreateCommand]()
	if err != nil {
		return nil, err
	}
	return map[string]*openapi.Schema{
		"Recommendation":       rec,
		"RecommendationPage":   page,
		"CreateRecommendation": create,
	}, nil
}
