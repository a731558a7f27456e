package providerfinder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

func TestNew_RequiresAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error without database address")
	}
	if !strings.Contains(err.Error(), "database address required") {
		t.Errorf("err = %v", err)
	}
}

func TestOptions_Apply(t *testing.T) {
	cfg := &clientConfig{}
	opts := []Option{
		WithRedis("localhost:6379", "secret"),
		WithUsername("svc"),
		WithKeyPrefix("pf:"),
		WithOpenAI("sk-test"),
		WithBaseURL("http://localhost:8080/v1"),
		WithModel("gpt-4o"),
		WithMaxRetries(5),
		WithFallbackSpecialty("Internal medicine"),
		WithStrictSpecialties(),
		WithoutNormalization(),
		WithLogger(slog.Default()),
		WithPrometheus(prometheus.NewRegistry()),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.addrs)
	}
	if cfg.password != "secret" || cfg.username != "svc" {
		t.Errorf("credentials not applied")
	}
	if cfg.keyPrefix != "pf:" {
		t.Errorf("keyPrefix = %q", cfg.keyPrefix)
	}
	if cfg.openaiKey != "sk-test" || cfg.openaiBaseURL != "http://localhost:8080/v1" || cfg.model != "gpt-4o" {
		t.Errorf("extraction config not applied: %+v", cfg)
	}
	if cfg.maxRetries != 5 || cfg.fallbackSpecialty != "Internal medicine" {
		t.Errorf("retry config not applied")
	}
	if !cfg.strictSpecialties || !cfg.noNormalize {
		t.Errorf("flags not applied")
	}
	if cfg.logger == nil || cfg.metricsReg == nil {
		t.Errorf("observability not applied")
	}
}

func TestExtractorAdapter_Converts(t *testing.T) {
	inner := extractorFunc(func(_ context.Context, systemPrompt, userText string, schema Schema) (Extraction, error) {
		if schema.Name != "test_schema" {
			t.Errorf("schema.Name = %q", schema.Name)
		}
		if systemPrompt != "sys" || userText != "user" {
			t.Errorf("prompt = %q / %q", systemPrompt, userText)
		}
		return Extraction{
			Status:           StatusIncomplete,
			Value:            json.RawMessage(`{"a":1}`),
			IncompleteReason: "length",
		}, nil
	})

	adapter := &extractorAdapter{inner: inner}
	got, err := adapter.Extract(context.Background(), "sys", "user", domain.Schema{
		Name:       "test_schema",
		Definition: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusIncomplete || got.IncompleteReason != "length" {
		t.Errorf("got = %+v", got)
	}
	if string(got.Value) != `{"a":1}` {
		t.Errorf("Value = %s", got.Value)
	}
}

func TestExtractorAdapter_WrapsError(t *testing.T) {
	inner := extractorFunc(func(_ context.Context, _, _ string, _ Schema) (Extraction, error) {
		return Extraction{}, errors.New("provider down")
	})

	adapter := &extractorAdapter{inner: inner}
	_, err := adapter.Extract(context.Background(), "", "", domain.Schema{})
	if err == nil || !strings.Contains(err.Error(), "provider down") {
		t.Errorf("err = %v", err)
	}
}

func TestNoopExtractor_Errors(t *testing.T) {
	_, err := noopExtractor{}.Extract(context.Background(), "", "", domain.Schema{})
	if err == nil || !strings.Contains(err.Error(), "extractor not configured") {
		t.Errorf("err = %v", err)
	}
}

// extractorFunc adapts a function to the Extractor interface for tests.
type extractorFunc func(ctx context.Context, systemPrompt, userText string, schema Schema) (Extraction, error)

func (f extractorFunc) Extract(
	ctx context.Context, systemPrompt, userText string, schema Schema,
) (Extraction, error) {
	return f(ctx, systemPrompt, userText, schema)
}
