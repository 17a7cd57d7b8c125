package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
	"github.com/storelens/shopsearch/internal/domain/search/request"
	"github.com/storelens/shopsearch/internal/domain/search/result"
	"github.com/storelens/shopsearch/internal/metrics"
)

// overFetchFactor widens KNN retrieval relative to the requested limit so
// the re-ranker has headroom to reorder before truncation.
const overFetchFactor = 2

// Retrieval mode labels for metrics.
const (
	modeSemantic   = "semantic"
	modeFilterOnly = "filter_only"
)

// Config holds search service settings.
type Config struct {
	// SimilarityThreshold drops candidates below this raw similarity
	// before re-ranking. Zero disables the cut.
	SimilarityThreshold float64
	Weights             Weights
	SampleQueries       []string
	Categories          []string
	Brands              []string
}

// Service runs the search pipeline: parse the query into a semantic fragment
// plus constraints, retrieve candidates from the vector index, re-rank and
// truncate.
type Service struct {
	repo   Repository
	embed  Embedder
	parser *Parser
	cfg    Config
	logger *zap.Logger
}

// New creates the search service.
func New(repo Repository, embed Embedder, parser *Parser, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		embed:  embed,
		parser: parser,
		cfg:    cfg,
		logger: logger,
	}
}

// Search executes a hybrid search request. When the query reduces to
// constraints only (no residual semantic text), retrieval skips vectorization
// and lists candidates by filters alone with neutral similarity.
func (s *Service) Search(ctx context.Context, req request.Request) ([]result.Candidate, error) {
	residual, parsed := s.parser.Parse(req.Query())

	// Explicit API filters win over constraints parsed from the query text.
	filters := constraint.Merge(parsed, req.Filters())
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConstraint, err)
	}

	mode := modeSemantic
	if residual == "" {
		mode = modeFilterOnly
	}

	candidates, err := s.retrieve(ctx, mode, residual, filters, req.Limit())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(mode, "error").Inc()
		return nil, err
	}

	ranked := Rank(candidates, queryTerms(residual), s.cfg.Weights)
	if len(ranked) > req.Limit() {
		ranked = ranked[:req.Limit()]
	}

	metrics.SearchRequestsTotal.WithLabelValues(mode, "success").Inc()
	metrics.SearchCandidatesReturned.Observe(float64(len(ranked)))

	s.logger.Debug("search completed",
		zap.String("mode", mode),
		zap.String("semantic_text", residual),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(ranked)))

	return ranked, nil
}

func (s *Service) retrieve(
	ctx context.Context, mode, residual string, filters constraint.Set, limit int,
) ([]result.Candidate, error) {
	if mode == modeFilterOnly {
		candidates, err := s.repo.SearchList(ctx, filters, limit*overFetchFactor)
		if err != nil {
			return nil, fmt.Errorf("%w: list candidates: %w", domain.ErrRetrieval, err)
		}
		return candidates, nil
	}

	emb, err := s.embed.Embed(ctx, residual)
	if err != nil {
		return nil, fmt.Errorf("%w: vectorize query: %w", domain.ErrRetrieval, err)
	}

	candidates, err := s.repo.SearchKNN(ctx, emb.Embedding, filters, limit*overFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("%w: knn search: %w", domain.ErrRetrieval, err)
	}

	return s.aboveThreshold(candidates), nil
}

// aboveThreshold cuts candidates whose raw similarity falls below the
// configured minimum. Applies only to semantic retrieval.
func (s *Service) aboveThreshold(candidates []result.Candidate) []result.Candidate {
	if s.cfg.SimilarityThreshold <= 0 {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if c.Similarity() >= s.cfg.SimilarityThreshold {
			kept = append(kept, c)
		}
	}
	return kept
}

// queryTerms splits the residual semantic text into match-bonus terms.
// The residual is already lowercase.
func queryTerms(residual string) []string {
	return strings.Fields(residual)
}

// Suggestions returns up to limit query completions for a partial input:
// configured sample queries first, then category suggestions. An empty
// partial matches everything.
func (s *Service) Suggestions(partial string, limit int) []string {
	if limit <= 0 {
		limit = 5
	}
	p := strings.ToLower(strings.TrimSpace(partial))

	suggestions := make([]string, 0, limit)
	for _, sample := range s.cfg.SampleQueries {
		if len(suggestions) == limit {
			return suggestions
		}
		if strings.Contains(strings.ToLower(sample), p) {
			suggestions = append(suggestions, sample)
		}
	}
	for _, category := range s.cfg.Categories {
		if len(suggestions) == limit {
			return suggestions
		}
		if strings.Contains(strings.ToLower(category), p) {
			suggestions = append(suggestions, "products in "+category)
		}
	}
	return suggestions
}

// PriceBand is a named price range facet. A nil Max means open-ended.
type PriceBand struct {
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"`
}

// FilterOptions lists the filterable facets exposed to search clients.
type FilterOptions struct {
	Categories     []string    `json:"categories"`
	Brands         []string    `json:"brands"`
	PriceBands     []PriceBand `json:"price_bands"`
	RatingMinimums []float64   `json:"rating_minimums"`
	Availability   []string    `json:"availability"`
}

// FilterOptions returns the facets available for structured filtering.
func (s *Service) FilterOptions() FilterOptions {
	return FilterOptions{
		Categories:     s.cfg.Categories,
		Brands:         s.cfg.Brands,
		PriceBands:     priceBands(),
		RatingMinimums: []float64{3.0, 3.5, 4.0, 4.5, 5.0},
		Availability:   []string{"in_stock", "out_of_stock"},
	}
}

func priceBands() []PriceBand {
	f := func(v float64) *float64 { return &v }
	return []PriceBand{
		{Label: "budget", Min: 0, Max: f(50)},
		{Label: "mid-range", Min: 50, Max: f(200)},
		{Label: "premium", Min: 200, Max: f(500)},
		{Label: "luxury", Min: 500},
	}
}
