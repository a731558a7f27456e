package providerfinder

import (
	"context"
	"errors"
	"testing"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	healthuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/health"
	rankuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/rank"
	searchuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/search"
)

// --- SearchService ---

func TestSearchService_Parse(t *testing.T) {
	mock := &mockSearchUC{
		parseFn: func(_ context.Context, userText string) (domain.SearchCriteria, error) {
			if userText != "cardiologist in Austin Texas" {
				t.Errorf("userText = %q", userText)
			}
			return domain.SearchCriteria{
				Specialty:  domain.StringPtr("Cardiology"),
				City:       domain.StringPtr("Austin"),
				State:      domain.StringPtr("TX"),
				Confidence: domain.ConfidenceHigh,
			}, nil
		},
	}

	svc := &SearchService{svc: mock}
	criteria, err := svc.Parse(context.Background(), "cardiologist in Austin Texas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.Specialty == nil || *criteria.Specialty != "Cardiology" {
		t.Errorf("Specialty = %v, want Cardiology", criteria.Specialty)
	}
	if criteria.Confidence != "high" {
		t.Errorf("Confidence = %q, want high", criteria.Confidence)
	}
}

func TestSearchService_Parse_ValidationErrorKeepsCriteria(t *testing.T) {
	mock := &mockSearchUC{
		parseFn: func(_ context.Context, _ string) (domain.SearchCriteria, error) {
			return domain.SearchCriteria{State: domain.StringPtr("TX")},
				domain.NewMissingFields("specialty")
		},
	}

	svc := &SearchService{svc: mock}
	criteria, err := svc.Parse(context.Background(), "someone in Texas")
	if !errors.Is(err, ErrValidationFailure) {
		t.Fatalf("err = %v, want ErrValidationFailure", err)
	}
	if criteria.State == nil || *criteria.State != "TX" {
		t.Errorf("partial criteria lost: State = %v", criteria.State)
	}
}

func TestSearchService_Providers(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, criteria domain.SearchCriteria, page, pageSize int) (searchuc.Result, error) {
			if page != 2 || pageSize != 25 {
				t.Errorf("page = %d, pageSize = %d", page, pageSize)
			}
			if criteria.Specialty == nil || *criteria.Specialty != "Family practice" {
				t.Errorf("Specialty = %v", criteria.Specialty)
			}
			return searchuc.Result{
				Providers: []domain.Provider{{ID: 42, LastName: "SMITH"}},
				Total:     57,
			}, nil
		},
	}

	svc := &SearchService{svc: mock}
	page, err := svc.Providers(context.Background(), Criteria{
		Specialty: domain.StringPtr("Family practice"),
		State:     domain.StringPtr("TX"),
	}, 2, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 57 {
		t.Errorf("Total = %d, want 57", page.Total)
	}
	if len(page.Providers) != 1 || page.Providers[0].ID != 42 {
		t.Errorf("Providers = %+v", page.Providers)
	}
}

func TestSearchService_Providers_Error(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ domain.SearchCriteria, _, _ int) (searchuc.Result, error) {
			return searchuc.Result{}, domain.ErrServiceFailure
		},
	}

	svc := &SearchService{svc: mock}
	_, err := svc.Providers(context.Background(), Criteria{}, 1, 10)
	if !errors.Is(err, ErrServiceFailure) {
		t.Fatalf("err = %v, want ErrServiceFailure", err)
	}
}

// --- RankService ---

func TestRankService_Providers(t *testing.T) {
	sex := domain.SexFemale
	mock := &mockRankUC{
		rankFn: func(_ context.Context, _ string, ids []int64) (rankuc.Result, error) {
			if len(ids) != 2 {
				t.Errorf("ids = %v", ids)
			}
			return rankuc.Result{
				Demographics: domain.UserDemographics{
					Age: domain.IntPtr(45),
					Sex: &sex,
				},
				Providers: []domain.ScoredProvider{
					{Provider: domain.Provider{ID: 2}, Score: 100, Rank: 1},
					{Provider: domain.Provider{ID: 1}, Score: 40, Rank: 2},
				},
			}, nil
		},
	}

	svc := &RankService{svc: mock}
	result, err := svc.Providers(context.Background(), "45 year old woman", []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Demographics.Sex != "female" {
		t.Errorf("Sex = %q, want female", result.Demographics.Sex)
	}
	if result.Demographics.Race != "" {
		t.Errorf("Race = %q, want empty", result.Demographics.Race)
	}
	if len(result.Providers) != 2 || result.Providers[0].Rank != 1 {
		t.Errorf("Providers = %+v", result.Providers)
	}
}

func TestRankService_Providers_FailureKeepsDemographics(t *testing.T) {
	mock := &mockRankUC{
		rankFn: func(_ context.Context, _ string, _ []int64) (rankuc.Result, error) {
			return rankuc.Result{
				Demographics: domain.UserDemographics{Age: domain.IntPtr(30)},
			}, rankuc.ErrNoDemographics
		},
	}

	svc := &RankService{svc: mock}
	result, err := svc.Providers(context.Background(), "hello", []int64{1})
	if !errors.Is(err, ErrValidationFailure) {
		t.Fatalf("err = %v, want ErrValidationFailure", err)
	}
	if result.Demographics.Age == nil || *result.Demographics.Age != 30 {
		t.Errorf("Demographics lost on failure: %+v", result.Demographics)
	}
}

// --- Health ---

func TestClient_Health(t *testing.T) {
	mock := &mockHealthUC{
		checkFn: func(_ context.Context) healthuc.Report {
			return healthuc.Report{
				Status: healthuc.Degraded,
				Checks: map[string]healthuc.CheckResult{
					"database":   healthuc.CheckOK,
					"extraction": healthuc.CheckError,
				},
			}
		},
	}

	c := &Client{healthSvc: mock}
	status := c.Health(context.Background())
	if status.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", status.Status)
	}
	if status.Checks["extraction"] != "error" {
		t.Errorf("Checks = %v", status.Checks)
	}
}
