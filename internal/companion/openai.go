package companion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// ErrEmptyReply is returned when a provider answers with no text.
var ErrEmptyReply = errors.New("provider returned an empty reply")

var retryBackoff = []time.Duration{time.Second, 4 * time.Second, 10 * time.Second}

// OpenAI composes replies with the OpenAI Responses API.
type OpenAI struct {
	client     openai.Client
	model      string
	temp       float64
	maxTokens  int
	maxRetries int
	timeout    time.Duration
}

// NewOpenAI creates an OpenAI composer from cfg. Extra client options are
// appended after the API key, which lets tests point the client at a stub server.
func NewOpenAI(cfg Config, opts ...option.RequestOption) *OpenAI {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}, opts...)
	return &OpenAI{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		temp:       cfg.Temperature,
		maxTokens:  cfg.MaxTokens,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.TimeoutDuration(),
	}
}

// Compose implements Composer.
func (o *OpenAI) Compose(ctx context.Context, req Request) (Reply, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		Instructions:    openai.String(SystemPrompt(req)),
		MaxOutputTokens: openai.Int(int64(o.maxTokens)),
		Temperature:     openai.Float(o.temp),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Message, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := o.callWithRetry(ctx, params)
	if err != nil {
		return Reply{}, fmt.Errorf("openai: %w", err)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return Reply{}, fmt.Errorf("openai: %w", ErrEmptyReply)
	}

	return Reply{Text: text, Source: SourceOpenAI, Escalate: Escalates(req.Label)}, nil
}

func (o *OpenAI) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	attempts := max(o.maxRetries, 1)

	var lastErr error
	for attempt := range attempts {
		resp, err := o.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == attempts-1 {
			break
		}

		wait := retryBackoff[min(attempt, len(retryBackoff)-1)]
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
}
