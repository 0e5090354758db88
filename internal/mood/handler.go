package mood

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/moodai/pkg/handlers"
	"github.com/JaimeStill/moodai/pkg/routes"
)

// ClassifyRequest is the body of the classify endpoint.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse pairs a classification with its chart lookups.
type ClassifyResponse struct {
	Mood      Label  `json:"mood"`
	Color     string `json:"color"`
	Score     int    `json:"score"`
	Sentiment int    `json:"sentiment"`
}

// Handler exposes the classifier and label catalog over HTTP.
type Handler struct {
	classifier *Classifier
	logger     *slog.Logger
	maxBody    int64
}

// NewHandler creates a Handler.
func NewHandler(classifier *Classifier, logger *slog.Logger, maxBody int64) *Handler {
	return &Handler{
		classifier: classifier,
		logger:     logger.With("handler", "mood"),
		maxBody:    maxBody,
	}
}

// Routes returns the route group definition for mood endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/mood",
		Tags:   []string{"Mood"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/labels", Handler: h.Labels, OpenAPI: ops.labels},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify, OpenAPI: ops.classify},
		},
	}
}

// Labels returns every label with its color and score.
func (h *Handler) Labels(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Catalog())
}

// Classify classifies the text in the request body.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[ClassifyRequest](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res, err := h.classifier.Classify(r.Context(), req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{
		Mood:      res.Label,
		Color:     Color(res.Label),
		Score:     Score(res.Label),
		Sentiment: res.Sentiment,
	})
}
