package mood

import "github.com/JaimeStill/moodai/pkg/openapi"

var ops = struct {
	labels, classify *openapi.Operation
}{
	labels: &openapi.Operation{
		Summary: "List mood labels with chart color and score",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Label catalog", "MoodCatalog"),
		},
	},
	classify: &openapi.Operation{
		Summary:     "Classify text into a mood label",
		RequestBody: openapi.RequestBodyJSON("ClassifyRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Classification", "ClassifyResponse"),
			400: openapi.ResponseRef("BadRequest"),
			503: {Description: "Sentiment scoring unavailable"},
		},
	},
}

// Schemas returns the component schemas referenced by mood operations.
func Schemas() (map[string]*openapi.Schema, error) {
	catalog, err := openapi.SchemaOf[[]Info]()
	if err != nil {
		return nil, err
	}
	req, err := openapi.SchemaOf[ClassifyRequest]()
	if err != nil {
		return nil, err
	}
	resp, err := openapi.SchemaOf[ClassifyResponse]()
	if err != nil {
		return nil, err
	}
	return map[string]*openapi.Schema{
		"MoodCatalog":      catalog,
		"ClassifyRequest":  req,
		"ClassifyResponse": resp,
	}, nil
}
