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
	"go.uber.org/zap"

	"github.com/storelens/shopsearch/internal/config"
	"github.com/storelens/shopsearch/internal/db"
	dbRedis "github.com/storelens/shopsearch/internal/db/redis"
	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/search/request"
	logpkg "github.com/storelens/shopsearch/internal/logger"
	"github.com/storelens/shopsearch/internal/metrics"
	"github.com/storelens/shopsearch/internal/repository/embcache"
	productsrepo "github.com/storelens/shopsearch/internal/repository/products"
	searchrepo "github.com/storelens/shopsearch/internal/repository/search"
	chiTransport "github.com/storelens/shopsearch/internal/transport/chi"
	openaiEmb "github.com/storelens/shopsearch/internal/transport/openai"
	cataloguc "github.com/storelens/shopsearch/internal/usecase/catalog"
	healthuc "github.com/storelens/shopsearch/internal/usecase/health"
	searchuc "github.com/storelens/shopsearch/internal/usecase/search"
	"github.com/storelens/shopsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting shopsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("collection", cfg.Catalog.Collection),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	emb := buildEmbedder(cfg, store, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cache", !cfg.Embedding.CacheOff),
	)

	// Create repositories
	productsRepo := productsrepo.New(store, cfg.Catalog.Collection, cfg.Embedding.Dimensions).
		WithHNSW(productsrepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		})
	searchRepo := searchrepo.New(store, cfg.Catalog.Collection)

	// Create use case services
	parser := searchuc.NewParser(searchuc.ParserConfig{
		CategoryKeywords:     cfg.Catalog.CategoryKeywords,
		Brands:               cfg.Catalog.Brands,
		HighlyRatedThreshold: cfg.Search.HighlyRatedThreshold,
		TopRatedThreshold:    cfg.Search.TopRatedThreshold,
	})
	searchSvc := searchuc.New(searchRepo, emb, parser, searchuc.Config{
		SimilarityThreshold: cfg.Search.SimilarityThreshold,
		Weights: searchuc.Weights{
			Semantic:          cfg.Search.SemanticWeight,
			Rating:            cfg.Search.RatingWeight,
			Popularity:        cfg.Search.PopularityWeight,
			ReviewSaturation:  cfg.Search.ReviewSaturation,
			MatchBonus:        cfg.Search.MatchBonus,
			OutOfStockPenalty: cfg.Search.OutOfStockPenalty,
		},
		SampleQueries: cfg.Catalog.SampleQueries,
		Categories:    cfg.Catalog.Categories,
		Brands:        cfg.Catalog.Brands,
	}, logger)
	catalogSvc := cataloguc.New(productsRepo, emb,
		cataloguc.Config{MaxBatchSize: cfg.Catalog.MaxBatchSize}, logger)

	// Health service
	healthSvc := healthuc.New(store, productsRepo, newEmbeddingHealthChecker(emb))

	// Provision the index up front so searches work on an empty catalog.
	if err := catalogSvc.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to provision product index", zap.Error(err))
	}

	// Create chi server
	server := chiTransport.NewServer(searchSvc, catalogSvc, healthSvc, logger).
		WithLimits(request.Limits{
			Default: cfg.Search.DefaultLimit,
			Max:     cfg.Search.MaxLimit,
		})

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

// embedder is the combined contract the services need from the vectorizer.
type embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached.
func buildEmbedder(cfg config.Config, store db.Store, logger *zap.Logger) embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	if cfg.Embedding.CacheOff {
		return base
	}
	return embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
}

// embeddingHealthChecker wraps the embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder embedder
}

func newEmbeddingHealthChecker(e embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: e}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
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
