package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/config"
	dbRedis "github.com/CalebSutherland/AI-Provider-Finder/internal/db/redis"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
	logpkg "github.com/CalebSutherland/AI-Provider-Finder/internal/logger"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/metrics"
	demorepo "github.com/CalebSutherland/AI-Provider-Finder/internal/repository/demographics"
	directoryrepo "github.com/CalebSutherland/AI-Provider-Finder/internal/repository/directory"
	chiTransport "github.com/CalebSutherland/AI-Provider-Finder/internal/transport/chi"
	openaiExt "github.com/CalebSutherland/AI-Provider-Finder/internal/transport/openai"
	demouc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/demographics"
	healthuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/health"
	queryuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/query"
	rankuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/rank"
	searchuc "github.com/CalebSutherland/AI-Provider-Finder/internal/usecase/search"
	"github.com/CalebSutherland/AI-Provider-Finder/internal/version"
)

func main() {
	// Local development convenience. Missing .env is not an error.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting provider finder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("extraction_model", cfg.Extraction.Model),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register extraction metrics explicitly (no init())
	metrics.RegisterExtractionMetrics()

	extractor := openaiExt.NewExtractor(&openaiExt.Config{
		APIKey:     cfg.Extraction.APIKey,
		BaseURL:    cfg.Extraction.BaseURL,
		Model:      cfg.Extraction.Model,
		TimeoutSec: cfg.Extraction.TimeoutSec,
		Logger:     logger,
	})

	specialties := domain.DefaultSpecialtyCatalog()
	procedures := domain.DefaultProcedureCatalog()
	logger.Info("Catalogs loaded",
		zap.Int("specialties", specialties.Len()),
		zap.Int("procedures", procedures.Len()),
	)

	querySvc := queryuc.New(extractor, specialties, procedures, queryuc.Options{
		MaxRetries:        cfg.Extraction.MaxRetries,
		FallbackSpecialty: cfg.Extraction.FallbackSpecialty,
		Strictness:        strictnessFromConfig(cfg.Extraction.SpecialtyStrictness),
	}, logger)
	demoSvc := demouc.New(extractor, cfg.Extraction.MaxRetries, logger)

	// Repositories (domain-native, no adapters)
	dirRepo := directoryrepo.New(store, cfg.Storage.KeyPrefix)
	demoRepo := demorepo.New(store, cfg.Storage.KeyPrefix)

	searchSvc := searchuc.New(querySvc, dirRepo, logger)
	rankSvc := rankuc.New(demoSvc, demoRepo, cfg.Ranking.Normalize(), logger)
	healthSvc := healthuc.New(store, extractor)

	server := chiTransport.NewServer(searchSvc, rankSvc, healthSvc, chiTransport.PageBounds{
		Default: cfg.Search.DefaultPageSize,
		Min:     cfg.Search.MinPageSize,
		Max:     cfg.Search.MaxPageSize,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func strictnessFromConfig(s config.SpecialtyStrictness) queryuc.Strictness {
	if s == config.StrictnessStrict {
		return queryuc.StrictnessStrict
	}
	return queryuc.StrictnessDowngrade
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
