package providerfinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/db"
	dbRedis "github.com/CalebSutherland/AI-Provider-Finder/internal/db/redis"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	demorepo "github.com/CalebSutherland/AI-Provider-Finder/internal/repository/demographics"
	directoryrepo "github.com/CalebSutherland/AI-Provider-Finder/internal/repository/directory"
	openaiExt "github.com/CalebSutherland/AI-Provider-Finder/internal/transport/openai"
	demouc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/demographics"
	healthuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/health"
	queryuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/query"
	rankuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/rank"
	searchuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the use case services.
type searchUseCase interface {
	ParseQuery(ctx context.Context, userText string) (domain.SearchCriteria, error)
	Search(ctx context.Context, criteria domain.SearchCriteria, page, pageSize int) (searchuc.Result, error)
}

type rankUseCase interface {
	Rank(ctx context.Context, userText string, providerIDs []int64) (rankuc.Result, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the provider finder SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	rankSvc   rankUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("providerfinder: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("providerfinder: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("providerfinder: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	// Use case services log through zap; the SDK observer handles its
	// own logging, so the internals stay quiet.
	nop := zap.NewNop()

	var ext domain.Extractor = noopExtractor{}
	var extHealth healthuc.ExtractionChecker
	switch {
	case cfg.extractor != nil:
		ext = &extractorAdapter{inner: cfg.extractor}
	case cfg.openaiKey != "":
		oe := openaiExt.NewExtractor(&openaiExt.Config{
			APIKey:  cfg.openaiKey,
			BaseURL: cfg.openaiBaseURL,
			Model:   cfg.model,
		})
		ext = oe
		extHealth = oe
	}

	strictness := queryuc.StrictnessDowngrade
	if cfg.strictSpecialties {
		strictness = queryuc.StrictnessStrict
	}
	querySvc := queryuc.New(ext,
		domain.DefaultSpecialtyCatalog(),
		domain.DefaultProcedureCatalog(),
		queryuc.Options{
			MaxRetries:        cfg.maxRetries,
			FallbackSpecialty: cfg.fallbackSpecialty,
			Strictness:        strictness,
		}, nop)
	demoSvc := demouc.New(ext, cfg.maxRetries, nop)

	dirRepo := directoryrepo.New(store, cfg.keyPrefix)
	demoRepo := demorepo.New(store, cfg.keyPrefix)

	return &Client{
		store:     store,
		searchSvc: searchuc.New(querySvc, dirRepo, nop),
		rankSvc:   rankuc.New(demoSvc, demoRepo, !cfg.noNormalize, nop),
		healthSvc: healthuc.New(store, extHealth),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the query parsing and directory search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Rank returns the demographic ranking service.
func (c *Client) Rank() *RankService {
	return &RankService{svc: c.rankSvc, obs: c.obs}
}

// extractorAdapter wraps the public Extractor to satisfy the internal
// capability boundary.
type extractorAdapter struct {
	inner Extractor
}

func (a *extractorAdapter) Extract(
	ctx context.Context, systemPrompt, userText string, schema domain.Schema,
) (domain.Extraction, error) {
	r, err := a.inner.Extract(ctx, systemPrompt, userText, Schema{
		Name:       schema.Name,
		Definition: schema.Definition,
	})
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("extract: %w", err)
	}
	return domain.Extraction{
		Status:           domain.ExtractionStatus(r.Status),
		Value:            r.Value,
		IncompleteReason: r.IncompleteReason,
	}, nil
}

// noopExtractor returns an error on Extract call (used when no extraction
// provider is configured).
type noopExtractor struct{}

func (noopExtractor) Extract(
	_ context.Context, _, _ string, _ domain.Schema,
) (domain.Extraction, error) {
	return domain.Extraction{}, errors.New(
		"providerfinder: extractor not configured (use WithOpenAI or WithExtractor)",
	)
}
