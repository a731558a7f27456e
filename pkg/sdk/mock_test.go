package providerfinder

import (
	"context"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	healthuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/health"
	rankuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/rank"
	searchuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	parseFn  func(ctx context.Context, userText string) (domain.SearchCriteria, error)
	searchFn func(ctx context.Context, criteria domain.SearchCriteria, page, pageSize int) (searchuc.Result, error)
}

func (m *mockSearchUC) ParseQuery(ctx context.Context, userText string) (domain.SearchCriteria, error) {
	return m.parseFn(ctx, userText)
}

func (m *mockSearchUC) Search(
	ctx context.Context, criteria domain.SearchCriteria, page, pageSize int,
) (searchuc.Result, error) {
	return m.searchFn(ctx, criteria, page, pageSize)
}

// --- rankUseCase mock ---

type mockRankUC struct {
	rankFn func(ctx context.Context, userText string, providerIDs []int64) (rankuc.Result, error)
}

func (m *mockRankUC) Rank(
	ctx context.Context, userText string, providerIDs []int64,
) (rankuc.Result, error) {
	return m.rankFn(ctx, userText, providerIDs)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}
