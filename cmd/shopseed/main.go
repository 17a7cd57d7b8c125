// Command shopseed provisions the product index and fills it with a
// deterministic synthetic catalog. Intended for demos and local development.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/storelens/shopsearch"
	logpkg "github.com/storelens/shopsearch/internal/logger"
)

func main() {
	// Optional .env for local runs; flags still win.
	_ = godotenv.Load()

	var (
		addr       = flag.String("addr", envOr("REDIS_ADDR", "localhost:6379"), "Redis address")
		password   = flag.String("password", os.Getenv("REDIS_PASSWORD"), "Redis password")
		apiKey     = flag.String("api-key", os.Getenv("OPENAI_API_KEY"), "embedding API key")
		baseURL    = flag.String("base-url", os.Getenv("OPENAI_BASE_URL"), "embedding API base URL")
		model      = flag.String("model", envOr("EMBEDDING_MODEL", "text-embedding-3-small"), "embedding model")
		dimensions = flag.Int("dimensions", 1536, "embedding vector size")
		collection = flag.String("collection", "products", "product collection name")
		count      = flag.Int("count", 100, "number of products to generate")
		seed       = flag.Int64("seed", 42, "catalog generator seed")
		drop       = flag.Bool("drop", false, "drop and recreate the index first")
		verify     = flag.Bool("verify", false, "run a probe search after seeding")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := logpkg.NewLogger("local", level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	client, err := shopsearch.New(ctx,
		shopsearch.WithRedis(*addr, *password),
		shopsearch.WithOpenAI(*apiKey, *baseURL, *model),
		shopsearch.WithVectorDimensions(*dimensions),
		shopsearch.WithCollection(*collection),
		shopsearch.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("Failed to connect", zap.Error(err))
	}
	defer client.Close()

	if *drop {
		if err := client.DropIndex(ctx); err != nil && !errors.Is(err, shopsearch.ErrIndexMissing) {
			logger.Fatal("Failed to drop index", zap.Error(err))
		}
		logger.Info("Index dropped")
	}

	if err := client.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to provision index", zap.Error(err))
	}

	n, err := client.Seed(ctx, *seed, *count)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Int("stored", n), zap.Error(err))
	}

	total, err := client.CountProducts(ctx)
	if err != nil {
		logger.Warn("Failed to count products", zap.Error(err))
	}

	logger.Info("Catalog seeded",
		zap.Int("generated", n),
		zap.Int64("seed", *seed),
		zap.Int("indexed_total", total),
		zap.String("collection", *collection),
	)

	if *verify {
		probe := "wireless headphones under $300"
		results, err := client.Search(ctx, probe, nil)
		if err != nil {
			logger.Fatal("Probe search failed", zap.String("query", probe), zap.Error(err))
		}
		if len(results) == 0 {
			logger.Warn("Probe search returned no results", zap.String("query", probe))
			return
		}
		top := results[0]
		logger.Info("Probe search ok",
			zap.String("query", probe),
			zap.Int("results", len(results)),
			zap.String("top_id", top.ID),
			zap.String("top_title", top.Title),
			zap.Float64("top_score", top.Score),
		)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
