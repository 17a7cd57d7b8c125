package shopsearch

import (
	"time"

	"go.uber.org/zap"

	"github.com/storelens/shopsearch/internal/config"
)

// Weights control the re-ranking score blend. Semantic, Rating and
// Popularity should sum to 1; OutOfStockPenalty multiplies the score of
// unavailable products.
type Weights struct {
	Semantic          float64
	Rating            float64
	Popularity        float64
	ReviewSaturation  float64
	MatchBonus        float64
	OutOfStockPenalty float64
}

// Option configures a Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(cfg *clientConfig) { f(cfg) }

type openaiSettings struct {
	apiKey  string
	baseURL string
	model   string
}

type clientConfig struct {
	addrs    []string
	password string

	embedder Embedder
	openai   *openaiSettings

	collection   string
	vectorDim    int
	hnswM        int
	hnswEF       int
	maxBatchSize int

	defaultLimit int
	maxLimit     int

	similarityThreshold float64
	weights             Weights
	categoryKeywords    map[string]string
	brands              []string
	categories          []string
	sampleQueries       []string

	readinessTimeout time.Duration
	logger           *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		collection:          "products",
		vectorDim:           1536,
		hnswM:               32,
		hnswEF:              400,
		maxBatchSize:        100,
		defaultLimit:        20,
		maxLimit:            100,
		similarityThreshold: 0.3,
		weights: Weights{
			Semantic:          0.7,
			Rating:            0.2,
			Popularity:        0.1,
			ReviewSaturation:  1000,
			MatchBonus:        0.05,
			OutOfStockPenalty: 0.5,
		},
		categoryKeywords: config.DefaultCategoryKeywords(),
		brands:           config.DefaultBrands(),
		categories:       config.DefaultCategories(),
		sampleQueries:    config.DefaultSampleQueries(),
		readinessTimeout: 10 * time.Second,
		logger:           zap.NewNop(),
	}
}

// WithRedis sets the Redis address and password. Required.
func WithRedis(addr, password string) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.addrs = []string{addr}
		cfg.password = password
	})
}

// WithEmbedder sets a custom embedding provider. Mutually exclusive with
// WithOpenAI; the last option applied wins.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.embedder = e
		cfg.openai = nil
	})
}

// WithOpenAI configures an OpenAI-compatible embedding provider with
// transparent embedding caching in Redis. baseURL may be empty for the
// public API.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.openai = &openaiSettings{apiKey: apiKey, baseURL: baseURL, model: model}
		cfg.embedder = nil
	})
}

// WithCollection sets the product collection name (default "products").
func WithCollection(name string) Option {
	return optionFunc(func(cfg *clientConfig) {
		if name != "" {
			cfg.collection = name
		}
	})
}

// WithVectorDimensions sets the embedding vector size (default 1536).
func WithVectorDimensions(dim int) Option {
	return optionFunc(func(cfg *clientConfig) {
		if dim > 0 {
			cfg.vectorDim = dim
		}
	})
}

// WithHNSW sets the HNSW graph parameters for the vector index.
func WithHNSW(m, efConstruction int) Option {
	return optionFunc(func(cfg *clientConfig) {
		if m > 0 {
			cfg.hnswM = m
		}
		if efConstruction > 0 {
			cfg.hnswEF = efConstruction
		}
	})
}

// WithMaxBatchSize caps the number of products per batch upsert (default 100).
func WithMaxBatchSize(n int) Option {
	return optionFunc(func(cfg *clientConfig) {
		if n > 0 {
			cfg.maxBatchSize = n
		}
	})
}

// WithSearchLimits sets the default and maximum result counts per search
// (defaults 20 and 100). Non-positive values keep the current setting.
func WithSearchLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(cfg *clientConfig) {
		if defaultLimit > 0 {
			cfg.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			cfg.maxLimit = maxLimit
		}
	})
}

// WithSimilarityThreshold sets the minimum raw similarity for semantic
// candidates. Zero disables the cut.
func WithSimilarityThreshold(t float64) Option {
	return optionFunc(func(cfg *clientConfig) {
		if t >= 0 {
			cfg.similarityThreshold = t
		}
	})
}

// WithRankingWeights overrides the re-ranking weights.
func WithRankingWeights(w Weights) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.weights = w
	})
}

// WithVocabulary overrides the parser vocabulary: category keywords, known
// brands and category names. Nil or empty arguments keep the defaults.
func WithVocabulary(keywords map[string]string, brands, categories []string) Option {
	return optionFunc(func(cfg *clientConfig) {
		if len(keywords) > 0 {
			cfg.categoryKeywords = keywords
		}
		if len(brands) > 0 {
			cfg.brands = brands
		}
		if len(categories) > 0 {
			cfg.categories = categories
		}
	})
}

// WithReadinessTimeout bounds how long New waits for the database.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(cfg *clientConfig) {
		if d > 0 {
			cfg.readinessTimeout = d
		}
	})
}

// WithLogger sets the logger (default no-op).
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(cfg *clientConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}
