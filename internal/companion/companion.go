// Package companion composes the supportive reply shown to a user after their
// message has been classified.
package companion

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/moodai/internal/mood"
)

// Source values reported on a Reply.
const (
	SourceCanned = "canned"
	SourceOpenAI = "openai"
	SourceGemini = "gemini"
)

// Suggestion is the part of a recommendation the composer can reference.
type Suggestion struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Duration string `json:"duration,omitempty"`
}

// Request carries everything a composer needs to write a reply.
type Request struct {
	Label       mood.Label
	Message     string
	Suggestions []Suggestion
}

// Reply is a composed response.
type Reply struct {
	Text     string `json:"response"`
	Source   string `json:"source"`
	Escalate bool   `json:"escalate"`
}

// Composer produces a reply for a classified message.
type Composer interface {
	Compose(ctx context.Context, req Request) (Reply, error)
}

// Escalates reports whether l should offer a human consultant.
func Escalates(l mood.Label) bool {
	return l == mood.BurntOut
}

var guidelines = map[mood.Label]string{
	mood.Motivated: "Celebrate their energy and help them channel it toward what matters to them.",
	mood.Neutral:   "Check in warmly and invite them to share what is on their mind.",
	mood.Stressed:  "Validate the pressure they feel and offer one small, concrete way to ease it.",
	mood.BurntOut:  "Acknowledge how serious burnout is, encourage rest, and offer to connect them with a human wellness consultant.",
	mood.Anxious:   "Reassure them they are safe and suggest a grounding or calming technique.",
}

// SystemPrompt builds the instruction given to model-backed composers.
func SystemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are MoodAI, a gentle wellness companion.\n")
	fmt.Fprintf(&b, "Detected mood: %s\n", req.Label)
	b.WriteString("Never diagnose. Be supportive and warm.\n")
	if g, ok := guidelines[req.Label]; ok {
		fmt.Fprintf(&b, "Guideline: %s\n", g)
	}

	b.WriteString("Suggestions:")
	if len(req.Suggestions) == 0 {
		b.WriteString(" None\n")
	} else {
		b.WriteString("\n")
		for _, s := range req.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s.Content)
		}
	}

	if Escalates(req.Label) {
		b.WriteString("Offer to connect them with a human consultant.\n")
	}
	b.WriteString("Keep the response short and kind.")
	return b.String()
}
