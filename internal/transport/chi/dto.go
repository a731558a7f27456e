package chi

import (
	"errors"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	healthuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/health"
)

// Error codes surfaced in API responses.
const (
	codeBadRequest        = "bad_request"
	codeParseFailure      = "parse_failure"
	codeValidationFailure = "validation_failure"
	codeServiceFailure    = "service_failure"
	codeNotFound          = "not_found"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type parseRequest struct {
	Query string `json:"query"`
}

type rankRequest struct {
	Query       string  `json:"query"`
	ProviderIDs []int64 `json:"provider_ids"`
}

// criteriaRequest mirrors domain.SearchCriteria on the wire.
type criteriaRequest struct {
	Specialty   *string `json:"specialty"`
	Zipcode     *string `json:"zipcode"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	HCPCSPrefix *string `json:"hcpcs_prefix"`
	Confidence  *string `json:"confidence"`
}

func (r criteriaRequest) toCriteria() domain.SearchCriteria {
	c := domain.SearchCriteria{
		Specialty:   r.Specialty,
		Zipcode:     r.Zipcode,
		City:        r.City,
		State:       r.State,
		HCPCSPrefix: r.HCPCSPrefix,
	}
	if r.Confidence != nil {
		c.Confidence = domain.Confidence(*r.Confidence)
	}
	return c
}

type criteriaResponse struct {
	Specialty        *string `json:"specialty"`
	Zipcode          *string `json:"zipcode"`
	City             *string `json:"city"`
	State            *string `json:"state"`
	HCPCSPrefix      *string `json:"hcpcs_prefix"`
	HCPCSDescription *string `json:"hcpcs_description"`
	Confidence       string  `json:"confidence"`
}

func criteriaToResponse(c domain.SearchCriteria) criteriaResponse {
	return criteriaResponse{
		Specialty:        c.Specialty,
		Zipcode:          c.Zipcode,
		City:             c.City,
		State:            c.State,
		HCPCSPrefix:      c.HCPCSPrefix,
		HCPCSDescription: c.HCPCSDescription,
		Confidence:       string(c.Confidence),
	}
}

// unsuccessfulParseResponse carries the consolidated validation message
// alongside everything that was extracted.
type unsuccessfulParseResponse struct {
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	ParsedParams criteriaResponse `json:"parsed_params"`
}

func unsuccessfulParse(c domain.SearchCriteria, err error) unsuccessfulParseResponse {
	msg := safeDomainMessage(err)
	var mfe *domain.MissingFieldsError
	if errors.As(err, &mfe) {
		msg = mfe.Error()
	}
	return unsuccessfulParseResponse{
		Code:         codeValidationFailure,
		Message:      msg,
		ParsedParams: criteriaToResponse(c),
	}
}

type searchResponse struct {
	Result []domain.Provider `json:"result"`
	Count  int64             `json:"count"`
}

func providersToResponse(providers []domain.Provider) []domain.Provider {
	if providers == nil {
		return []domain.Provider{}
	}
	return providers
}

type scoredProviderResponse struct {
	domain.Provider
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

func scoredToResponse(scored []domain.ScoredProvider) []scoredProviderResponse {
	out := make([]scoredProviderResponse, len(scored))
	for i, sp := range scored {
		out[i] = scoredProviderResponse{Provider: sp.Provider, Score: sp.Score, Rank: sp.Rank}
	}
	return out
}

type rankResponse struct {
	Success      bool                     `json:"success"`
	ParsedParams domain.UserDemographics  `json:"parsed_params"`
	Results      []scoredProviderResponse `json:"results"`
	Error        string                   `json:"error,omitempty"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}
