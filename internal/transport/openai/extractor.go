// Package openai implements the structured extraction capability over
// the OpenAI-compatible chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/metrics"
)

// Extractor calls the chat completions API with a strict JSON schema
// response format and returns the raw structured value.
type Extractor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the extraction provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	TimeoutSec int
	Logger     *zap.Logger
}

// NewExtractor creates an OpenAI-compatible structured extractor.
func NewExtractor(cfg *Config) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger,
	}
}

// Extract implements domain.Extractor. A truncated completion comes back
// as StatusIncomplete; an empty completion as a nil Value. Transport and
// API errors wrap domain.ErrServiceFailure.
func (e *Extractor) Extract(
	ctx context.Context, systemPrompt, userText string, schema domain.Schema,
) (domain.Extraction, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schema.Name,
				Schema: schema.Definition,
				Strict: true,
			},
		},
	}

	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues(schema.Name, e.model, "error").Inc()
		return domain.Extraction{}, parseAPIError(err)
	}

	metrics.ExtractionRequestDuration.WithLabelValues(schema.Name, e.model).Observe(duration.Seconds())

	if resp.Usage.PromptTokens > 0 {
		metrics.ExtractionTokensTotal.WithLabelValues(e.model, "prompt").
			Add(float64(resp.Usage.PromptTokens))
		metrics.ExtractionTokensTotal.WithLabelValues(e.model, "completion").
			Add(float64(resp.Usage.CompletionTokens))
	}

	if len(resp.Choices) == 0 {
		metrics.ExtractionRequestsTotal.WithLabelValues(schema.Name, e.model, "empty").Inc()
		return domain.Extraction{Status: domain.StatusComplete}, nil
	}

	choice := resp.Choices[0]

	if choice.FinishReason == openai.FinishReasonLength ||
		choice.FinishReason == openai.FinishReasonContentFilter {
		metrics.ExtractionRequestsTotal.WithLabelValues(schema.Name, e.model, "incomplete").Inc()
		e.logger.Warn("incomplete extraction response",
			zap.String("schema", schema.Name),
			zap.String("finish_reason", string(choice.FinishReason)),
		)
		return domain.Extraction{
			Status:           domain.StatusIncomplete,
			IncompleteReason: string(choice.FinishReason),
		}, nil
	}

	content := trimCodeFences(choice.Message.Content)
	if content == "" || !json.Valid([]byte(content)) {
		metrics.ExtractionRequestsTotal.WithLabelValues(schema.Name, e.model, "empty").Inc()
		e.logger.Warn("extraction returned no usable structure",
			zap.String("schema", schema.Name),
		)
		return domain.Extraction{Status: domain.StatusComplete}, nil
	}

	metrics.ExtractionRequestsTotal.WithLabelValues(schema.Name, e.model, "success").Inc()

	return domain.Extraction{
		Status: domain.StatusComplete,
		Value:  json.RawMessage(content),
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Extractor) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// trimCodeFences strips markdown fences some models wrap around JSON
// despite response_format.
func trimCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseAPIError extracts a human-readable error from the API response.
// All errors wrap domain.ErrServiceFailure for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrServiceFailure

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("extraction API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("extraction API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("extraction request failed: %w", wrap)
}
