package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// mockExtractor replays canned extraction outcomes per attempt.
type mockExtractor struct {
	results []domain.Extraction
	errs    []error
	calls   int
}

func (m *mockExtractor) Extract(
	_ context.Context, _, _ string, _ domain.Schema,
) (domain.Extraction, error) {
	i := m.calls
	m.calls++
	if i >= len(m.results) {
		i = len(m.results) - 1
	}
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return m.results[i], err
}

func complete(payload string) domain.Extraction {
	return domain.Extraction{
		Status: domain.StatusComplete,
		Value:  json.RawMessage(payload),
	}
}

func newService(ext Extractor, opts Options) *Service {
	return New(
		ext,
		domain.DefaultSpecialtyCatalog(),
		domain.DefaultProcedureCatalog(),
		opts,
		zap.NewNop(),
	)
}

func TestParse_Success(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{complete(
		`{"specialty":"Cardiology","zipcode":null,"city":"Austin","state":"TX","hcpcs_prefix":"93","confidence":"high"}`,
	)}}
	svc := newService(ext, Options{})

	c, err := svc.Parse(context.Background(), "find me a cardiologist in Austin Texas who does stress tests")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c.Specialty == nil || *c.Specialty != "Cardiology" {
		t.Errorf("specialty = %v, expected Cardiology", c.Specialty)
	}
	if c.City == nil || *c.City != "Austin" {
		t.Errorf("city = %v, expected Austin", c.City)
	}
	if c.State == nil || *c.State != "TX" {
		t.Errorf("state = %v, expected TX", c.State)
	}
	if c.HCPCSPrefix == nil || *c.HCPCSPrefix != "93" {
		t.Errorf("hcpcs_prefix = %v, expected 93", c.HCPCSPrefix)
	}
	if c.HCPCSDescription == nil || *c.HCPCSDescription != "Cardiovascular Procedures (92920-93799)" {
		t.Errorf("hcpcs_description = %v, expected cardiovascular mapping", c.HCPCSDescription)
	}
	if c.Confidence != domain.ConfidenceHigh {
		t.Errorf("confidence = %s, expected high", c.Confidence)
	}
}

func TestParse_ShortInputShortCircuits(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{complete(`{}`)}}
	svc := newService(ext, Options{})

	c, err := svc.Parse(context.Background(), "doctor")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !c.Empty() {
		t.Errorf("expected empty criteria for short input, got %+v", c)
	}
	if c.Confidence != domain.ConfidenceLow {
		t.Errorf("confidence = %s, expected low", c.Confidence)
	}
	if ext.calls != 0 {
		t.Errorf("extractor called %d times, expected 0", ext.calls)
	}
}

func TestParse_RetriesIncompleteThenSucceeds(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{
		{Status: domain.StatusIncomplete, IncompleteReason: "length"},
		complete(`{"specialty":"Dermatology","zipcode":"98101","city":null,"state":null,"hcpcs_prefix":null,"confidence":"medium"}`),
	}}
	svc := newService(ext, Options{MaxRetries: 2})

	c, err := svc.Parse(context.Background(), "skin doctor near 98101")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ext.calls != 2 {
		t.Errorf("extractor called %d times, expected 2", ext.calls)
	}
	if c.Zipcode == nil || *c.Zipcode != "98101" {
		t.Errorf("zipcode = %v, expected 98101", c.Zipcode)
	}
}

func TestParse_RetryBudgetExhausted(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{
		{Status: domain.StatusIncomplete, IncompleteReason: "length"},
	}}
	svc := newService(ext, Options{MaxRetries: 2})

	_, err := svc.Parse(context.Background(), "skin doctor near 98101")
	if err == nil {
		t.Fatal("expected error after retry exhaustion")
	}
	if !errors.Is(err, domain.ErrParseFailure) {
		t.Errorf("expected ErrParseFailure, got %v", err)
	}
	if ext.calls != 3 {
		t.Errorf("extractor called %d times, expected 3", ext.calls)
	}
}

func TestParse_ServiceFailureSurfaces(t *testing.T) {
	ext := &mockExtractor{
		results: []domain.Extraction{{}},
		errs:    []error{domain.ErrServiceFailure},
	}

	svc := newService(ext, Options{MaxRetries: 1})

	_, err := svc.Parse(context.Background(), "skin doctor near 98101")
	if err == nil {
		t.Fatal("expected error for failing capability")
	}
	if !errors.Is(err, domain.ErrServiceFailure) {
		t.Errorf("expected ErrServiceFailure, got %v", err)
	}
	if ext.calls != 2 {
		t.Errorf("extractor called %d times, expected retries before surfacing", ext.calls)
	}
}

func TestParse_DowngradesUnknownSpecialty(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{complete(
		`{"specialty":"Wizardry","zipcode":null,"city":null,"state":"WA","hcpcs_prefix":null,"confidence":"high"}`,
	)}}
	svc := newService(ext, Options{Strictness: StrictnessDowngrade})

	c, err := svc.Parse(context.Background(), "I need a wizard in Washington")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Specialty == nil || *c.Specialty != "Wizardry" {
		t.Errorf("specialty = %v, expected kept as Wizardry", c.Specialty)
	}
	if c.Confidence != domain.ConfidenceLow {
		t.Errorf("confidence = %s, expected downgrade to low", c.Confidence)
	}
}

func TestParse_StrictRejectsUnknownSpecialty(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{complete(
		`{"specialty":"Wizardry","zipcode":null,"city":null,"state":"WA","hcpcs_prefix":null,"confidence":"high"}`,
	)}}
	svc := newService(ext, Options{MaxRetries: 1, Strictness: StrictnessStrict})

	_, err := svc.Parse(context.Background(), "I need a wizard in Washington")
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if !errors.Is(err, domain.ErrParseFailure) {
		t.Errorf("expected ErrParseFailure, got %v", err)
	}
	if ext.calls != 2 {
		t.Errorf("extractor called %d times, expected retry before failing", ext.calls)
	}
}

func TestParse_SanitizesMalformedFields(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{complete(
		`{"specialty":"Cardiology","zipcode":"9810","city":null,"state":"Washington","hcpcs_prefix":"99","confidence":"high"}`,
	)}}
	svc := newService(ext, Options{})

	c, err := svc.Parse(context.Background(), "cardiologist in washington 9810")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Zipcode != nil {
		t.Errorf("zipcode = %v, expected dropped (4 digits)", c.Zipcode)
	}
	if c.State != nil {
		t.Errorf("state = %v, expected dropped (full name)", c.State)
	}
	if c.HCPCSPrefix != nil {
		t.Errorf("hcpcs_prefix = %v, expected dropped (unknown key)", c.HCPCSPrefix)
	}
	if c.HCPCSDescription != nil {
		t.Errorf("hcpcs_description = %v, expected nil without prefix", c.HCPCSDescription)
	}
}

func TestParse_LowercasesStateToUpper(t *testing.T) {
	ext := &mockExtractor{results: []domain.Extraction{complete(
		`{"specialty":"Cardiology","zipcode":null,"city":null,"state":"wa","hcpcs_prefix":null,"confidence":"high"}`,
	)}}
	svc := newService(ext, Options{})

	c, err := svc.Parse(context.Background(), "cardiologist in wa")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.State == nil || *c.State != "WA" {
		t.Errorf("state = %v, expected WA", c.State)
	}
}
