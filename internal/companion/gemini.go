package companion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Gemini composes replies with the Gemini API.
type Gemini struct {
	client    *genai.Client
	model     string
	temp      float32
	maxTokens int32
	timeout   time.Duration
}

// NewGemini creates a Gemini composer from cfg.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Gemini{
		client:    client,
		model:     cfg.Model,
		temp:      float32(cfg.Temperature),
		maxTokens: int32(cfg.MaxTokens),
		timeout:   cfg.TimeoutDuration(),
	}, nil
}

// Compose implements Composer.
func (g *Gemini) Compose(ctx context.Context, req Request) (Reply, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(req), genai.RoleUser),
		Temperature:       genai.Ptr(g.temp),
		MaxOutputTokens:   g.maxTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Message), config)
	if err != nil {
		return Reply{}, fmt.Errorf("gemini: %w", err)
	}

	// Blocked prompts come back without candidates.
	if len(res.Candidates) == 0 {
		return Reply{}, fmt.Errorf("gemini: %w", ErrEmptyReply)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return Reply{}, fmt.Errorf("gemini: %w", ErrEmptyReply)
	}

	return Reply{Text: text, Source: SourceGemini, Escalate: Escalates(req.Label)}, nil
}
