// Package chi exposes the provider search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	healthuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/health"
	rankuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/rank"
	searchuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/search"
)

// PageBounds clamp client-supplied pagination.
type PageBounds struct {
	Default int
	Min     int
	Max     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the search, rank, and health services into HTTP handlers.
type Server struct {
	search        *searchuc.Service
	rank          *rankuc.Service
	health        *healthuc.Service
	pages         PageBounds
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	rank *rankuc.Service,
	health *healthuc.Service,
	pages PageBounds,
	logger *zap.Logger,
) *Server {
	if pages.Default == 0 {
		pages = PageBounds{Default: 10, Min: 10, Max: 100}
	}
	s := &Server{
		search: search,
		rank:   rank,
		health: health,
		pages:  pages,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrParseFailure, http.StatusBadRequest, codeParseFailure),
		sentinelHandler(domain.ErrValidationFailure, http.StatusBadRequest, codeValidationFailure),
		sentinelHandler(domain.ErrServiceFailure, http.StatusBadGateway, codeServiceFailure),
		sentinelHandler(domain.ErrProviderNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Routes mounts every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/providers/search/parse", s.ParseSearch)
	r.Post("/api/providers/search/query", s.SearchProviders)
	r.Post("/api/providers/rank", s.RankProviders)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ParseSearch handles POST /api/providers/search/parse. The response is
// the extracted criteria; validation failures come back as 400 with the
// partial criteria attached so the client can ask the user to fill the
// gaps.
func (s *Server) ParseSearch(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailure, "query is required")
		return
	}

	criteria, err := s.search.ParseQuery(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailure) {
			s.logger.Warn("parse produced incomplete criteria", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, unsuccessfulParse(criteria, err))
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, criteriaToResponse(criteria))
}

// SearchProviders handles POST /api/providers/search/query. Criteria
// arrive structured (typically from a prior parse call); page and
// page_size query params are clamped to the configured bounds.
func (s *Server) SearchProviders(w http.ResponseWriter, r *http.Request) {
	var req criteriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	page := s.parsePage(r)
	pageSize := s.parsePageSize(r)

	result, err := s.search.Search(r.Context(), req.toCriteria(), page, pageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Result: providersToResponse(result.Providers),
		Count:  result.Total,
	})
}

// RankProviders handles POST /api/providers/rank. Extraction and
// validation failures are structured unsuccessful results rather than
// bare errors: the client always sees what was understood.
func (s *Server) RankProviders(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailure, "query is required")
		return
	}

	result, err := s.rank.Rank(r.Context(), req.Query, req.ProviderIDs)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailure) || errors.Is(err, domain.ErrParseFailure) {
			s.logger.Warn("rank request not satisfiable", zap.Error(err))
			writeJSON(w, http.StatusOK, rankResponse{
				Success:      false,
				ParsedParams: result.Demographics,
				Results:      []scoredProviderResponse{},
				Error:        safeDomainMessage(err),
			})
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rankResponse{
		Success:      true,
		ParsedParams: result.Demographics,
		Results:      scoredToResponse(result.Providers),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) parsePageSize(r *http.Request) int {
	size, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	if err != nil {
		return s.pages.Default
	}
	if size < s.pages.Min {
		return s.pages.Min
	}
	if size > s.pages.Max {
		return s.pages.Max
	}
	return size
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a client-facing message without exposing
// internals. MissingFieldsError carries its own consolidated message;
// other errors fall back to their sentinel text.
func safeDomainMessage(err error) string {
	var mfe *domain.MissingFieldsError
	if errors.As(err, &mfe) {
		return mfe.Error()
	}

	if errors.Is(err, rankuc.ErrNoDemographics) {
		return "Could not determine age, sex, or race from input. Please provide more details."
	}

	sentinels := []error{
		domain.ErrParseFailure,
		domain.ErrValidationFailure,
		domain.ErrServiceFailure,
		domain.ErrProviderNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
