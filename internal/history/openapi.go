package history

import (
	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

var ops = struct {
	list, chart, summary *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List mood history",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search message excerpts", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("History page", "HistoryPage"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	chart: &openapi.Operation{
		Summary: "Mood chart points, oldest first",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("days", "integer", "Window in days (default 30, max 365)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Chart points", "ChartPoints"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	summary: &openapi.Operation{
		Summary: "Mood summary",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("days", "integer", "Window in days (default 7, max 365)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Summary", "MoodSummary"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

// Schemas returns the component schemas referenced by history operations.
func Schemas() (map[string]*openapi.Schema, error) {
	page, err := openapi.SchemaOf[pagination.PageResult[Entry]]()
	if err != nil {
		return nil, err
	}
	points, err := openapi.SchemaOf[[]ChartPoint]()
	if err != nil {
		return nil, err
	}
	summary, err := openapi.SchemaOf[Summary]()
	if err != nil {
		return nil, err
	}
	return map[string]*openapi.Schema{
		"HistoryPage": page,
		"ChartPoints": points,
		"MoodSummary": summary,
	}, nil
}
