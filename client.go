// Package shopsearch embeds the product search engine as a library: connect
// to Redis, provision the vector index, seed or upsert products, and run
// hybrid semantic search without standing up the HTTP API.
package shopsearch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/storelens/shopsearch/internal/datagen"
	dbredis "github.com/storelens/shopsearch/internal/db/redis"
	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/product"
	"github.com/storelens/shopsearch/internal/domain/search/request"
	"github.com/storelens/shopsearch/internal/metrics"
	"github.com/storelens/shopsearch/internal/repository/embcache"
	"github.com/storelens/shopsearch/internal/repository/products"
	searchrepo "github.com/storelens/shopsearch/internal/repository/search"
	openaitr "github.com/storelens/shopsearch/internal/transport/openai"
	cataloguc "github.com/storelens/shopsearch/internal/usecase/catalog"
	healthuc "github.com/storelens/shopsearch/internal/usecase/health"
	searchuc "github.com/storelens/shopsearch/internal/usecase/search"
)

// Sentinel errors surfaced by Client methods. Compare with errors.Is.
var (
	ErrProductNotFound   = domain.ErrProductNotFound
	ErrInvalidProduct    = domain.ErrInvalidProduct
	ErrInvalidConstraint = domain.ErrInvalidConstraint
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrBatchTooLarge     = domain.ErrBatchTooLarge
	ErrRetrieval         = domain.ErrRetrieval
	ErrIndexMissing      = domain.ErrIndexMissing
)

// Embedder vectorizes text. Implementations must return the same vector for
// identical input. Vector length must match the configured dimensions.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is the embedded search engine. Create with New, release with Close.
type Client struct {
	store        *dbredis.Store
	catalog      *cataloguc.Service
	search       *searchuc.Service
	health       *healthuc.Service
	maxBatchSize int
	limits       request.Limits
	logger       *zap.Logger
}

// New connects to the database, waits for it to become ready and wires the
// search engine. An embedding provider is required: either WithOpenAI or
// WithEmbedder.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("shopsearch: database address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.openai == nil {
		return nil, errors.New("shopsearch: embedding provider required (use WithOpenAI or WithEmbedder)")
	}

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("shopsearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("shopsearch: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store *dbredis.Store, cfg *clientConfig) *Client {
	embedder, checker := buildEmbedder(store, cfg)

	productsRepo := products.New(store, cfg.collection, cfg.vectorDim).
		WithHNSW(products.HNSWConfig{M: cfg.hnswM, EFConstruct: cfg.hnswEF})
	searchRepo := searchrepo.New(store, cfg.collection)

	parser := searchuc.NewParser(searchuc.ParserConfig{
		CategoryKeywords:     cfg.categoryKeywords,
		Brands:               cfg.brands,
		HighlyRatedThreshold: 4.0,
		TopRatedThreshold:    4.5,
	})

	searchSvc := searchuc.New(searchRepo, embedder, parser, searchuc.Config{
		SimilarityThreshold: cfg.similarityThreshold,
		Weights: searchuc.Weights{
			Semantic:          cfg.weights.Semantic,
			Rating:            cfg.weights.Rating,
			Popularity:        cfg.weights.Popularity,
			ReviewSaturation:  cfg.weights.ReviewSaturation,
			MatchBonus:        cfg.weights.MatchBonus,
			OutOfStockPenalty: cfg.weights.OutOfStockPenalty,
		},
		SampleQueries: cfg.sampleQueries,
		Categories:    cfg.categories,
		Brands:        cfg.brands,
	}, cfg.logger)

	catalogSvc := cataloguc.New(productsRepo, embedder,
		cataloguc.Config{MaxBatchSize: cfg.maxBatchSize}, cfg.logger)

	healthSvc := healthuc.New(store, productsRepo, checker)

	return &Client{
		store:        store,
		catalog:      catalogSvc,
		search:       searchSvc,
		health:       healthSvc,
		maxBatchSize: cfg.maxBatchSize,
		limits:       request.Limits{Default: cfg.defaultLimit, Max: cfg.maxLimit},
		logger:       cfg.logger,
	}
}

// buildEmbedder resolves the configured embedding provider and, when the
// provider exposes a health check, the checker for health reports.
func buildEmbedder(store *dbredis.Store, cfg *clientConfig) (cataloguc.Embedder, healthuc.EmbeddingChecker) {
	if cfg.embedder != nil {
		adapter := &embedderAdapter{inner: cfg.embedder}
		if checker, ok := cfg.embedder.(domain.HealthChecker); ok {
			return adapter, checker
		}
		return adapter, nil
	}

	base := openaitr.NewEmbedder(&openaitr.Config{
		APIKey:     cfg.openai.apiKey,
		BaseURL:    cfg.openai.baseURL,
		Model:      cfg.openai.model,
		Dimensions: cfg.vectorDim,
		Provider:   "openai",
		Logger:     cfg.logger,
	})
	return embcache.New(base, store, metrics.EmbeddingCacheTotal, cfg.logger), base
}

// embedderAdapter lifts the minimal exported Embedder to the internal
// contract. Errors carry the provider sentinel for consistent mapping.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}

func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchFallback(ctx, a, texts)
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// EnsureIndex provisions the vector index if it does not exist yet.
func (c *Client) EnsureIndex(ctx context.Context) error {
	return c.catalog.EnsureIndex(ctx)
}

// DropIndex removes the vector index. Stored products are kept.
func (c *Client) DropIndex(ctx context.Context) error {
	return c.catalog.DropIndex(ctx)
}

// UpsertProduct embeds and stores a product. Returns true when the product
// was created rather than replaced.
func (c *Client) UpsertProduct(ctx context.Context, p Product) (bool, error) {
	dp, err := p.toDomain()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidProduct, err)
	}
	return c.catalog.Upsert(ctx, dp)
}

// UpsertProducts embeds and stores products in batches, splitting the input
// by the configured batch size.
func (c *Client) UpsertProducts(ctx context.Context, prods []Product) error {
	domainProds := make([]product.Product, len(prods))
	for i := range prods {
		dp, err := prods[i].toDomain()
		if err != nil {
			return fmt.Errorf("%w: product %d: %v", domain.ErrInvalidProduct, i, err)
		}
		domainProds[i] = dp
	}

	for start := 0; start < len(domainProds); start += c.maxBatchSize {
		end := start + c.maxBatchSize
		if end > len(domainProds) {
			end = len(domainProds)
		}
		if err := c.catalog.BatchUpsert(ctx, domainProds[start:end]); err != nil {
			return fmt.Errorf("batch at %d: %w", start, err)
		}
	}
	return nil
}

// GetProduct returns a stored product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	p, err := c.catalog.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return productFromDomain(&p), nil
}

// DeleteProduct removes a product by ID.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.catalog.Delete(ctx, id)
}

// CountProducts returns the number of indexed products.
func (c *Client) CountProducts(ctx context.Context) (int, error) {
	return c.catalog.Count(ctx)
}

// Seed generates n synthetic catalog products deterministically from seed and
// stores them in batches. Returns the number of products stored. Re-seeding
// with the same seed overwrites the same records.
func (c *Client) Seed(ctx context.Context, seed int64, n int) (int, error) {
	prods, err := datagen.New(seed).Products(n)
	if err != nil {
		return 0, fmt.Errorf("generate catalog: %w", err)
	}

	for start := 0; start < len(prods); start += c.maxBatchSize {
		end := start + c.maxBatchSize
		if end > len(prods) {
			end = len(prods)
		}
		if err := c.catalog.BatchUpsert(ctx, prods[start:end]); err != nil {
			return start, fmt.Errorf("seed batch at %d: %w", start, err)
		}
	}
	return len(prods), nil
}

// Search runs a hybrid search: structured constraints are parsed out of the
// query text, opts (if any) override them, and the residual text is matched
// semantically. A nil opts uses the default limit.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) ([]SearchResult, error) {
	limit := 0
	if opts != nil {
		limit = opts.Limit
	}

	req, err := request.NewWithLimits(query, opts.toConstraints(), limit, c.limits)
	if err != nil {
		return nil, err
	}

	candidates, err := c.search.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(candidates))
	for i := range candidates {
		results[i] = resultFromCandidate(&candidates[i])
	}
	return results, nil
}

// Suggestions returns up to limit query completions for a partial input.
func (c *Client) Suggestions(partial string, limit int) []string {
	return c.search.Suggestions(partial, limit)
}

// FilterOptions lists the facets available for structured filtering.
func (c *Client) FilterOptions() FilterOptions {
	opts := c.search.FilterOptions()

	bands := make([]PriceBand, len(opts.PriceBands))
	for i, b := range opts.PriceBands {
		bands[i] = PriceBand{Label: b.Label, Min: b.Min, Max: b.Max}
	}

	return FilterOptions{
		Categories:     opts.Categories,
		Brands:         opts.Brands,
		PriceBands:     bands,
		RatingMinimums: opts.RatingMinimums,
		Availability:   opts.Availability,
	}
}

// Health reports component health and the indexed product count.
func (c *Client) Health(ctx context.Context) HealthReport {
	report := c.health.Check(ctx)

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	return HealthReport{
		Status:   string(report.Status),
		Checks:   checks,
		Products: report.Products,
	}
}
