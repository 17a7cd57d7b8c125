package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/product"
)

// DefaultMaxBatchSize caps bulk upserts when the config does not set a limit.
const DefaultMaxBatchSize = 100

// Config holds catalog service settings.
type Config struct {
	MaxBatchSize int
}

// Service manages the product catalog: index provisioning and product
// lifecycle. Every write embeds the product text before storage, so an
// indexed product always carries a vector consistent with its metadata.
type Service struct {
	repo   Repository
	embed  Embedder
	cfg    Config
	logger *zap.Logger
}

// New creates the catalog service.
func New(repo Repository, embed Embedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = DefaultMaxBatchSize
	}
	return &Service{repo: repo, embed: embed, cfg: cfg, logger: logger}
}

// EnsureIndex provisions the product index if it does not exist yet.
func (s *Service) EnsureIndex(ctx context.Context) error {
	return s.repo.EnsureIndex(ctx)
}

// DropIndex removes the product index.
func (s *Service) DropIndex(ctx context.Context) error {
	return s.repo.DropIndex(ctx)
}

// Upsert embeds the product text and creates or replaces the record.
// Returns true if the product did not exist before.
func (s *Service) Upsert(ctx context.Context, p product.Product) (bool, error) {
	emb, err := s.embed.Embed(ctx, p.EmbeddingText())
	if err != nil {
		return false, fmt.Errorf("embed product %s: %w", p.ID(), err)
	}

	vectorized := p.WithVector(emb.Embedding)
	created, err := s.repo.Upsert(ctx, &vectorized)
	if err != nil {
		return false, err
	}

	s.logger.Debug("product upserted",
		zap.String("id", p.ID()),
		zap.Bool("created", created),
		zap.Int("tokens", emb.TotalTokens))

	return created, nil
}

// BatchUpsert embeds and stores multiple products in one pass. The batch is
// all-or-nothing: an embedding or storage failure stores none of it.
func (s *Service) BatchUpsert(ctx context.Context, prods []product.Product) error {
	if len(prods) == 0 {
		return nil
	}
	if len(prods) > s.cfg.MaxBatchSize {
		return fmt.Errorf("%w: %d products (max %d)",
			domain.ErrBatchTooLarge, len(prods), s.cfg.MaxBatchSize)
	}

	texts := make([]string, len(prods))
	for i := range prods {
		texts[i] = prods[i].EmbeddingText()
	}

	emb, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("batch embed %d products: %w", len(prods), err)
	}
	if len(emb.Embeddings) != len(prods) {
		return fmt.Errorf("%w: got %d embeddings for %d products",
			domain.ErrEmbeddingProviderError, len(emb.Embeddings), len(prods))
	}

	vectorized := make([]product.Product, len(prods))
	for i := range prods {
		vectorized[i] = prods[i].WithVector(emb.Embeddings[i])
	}

	if err := s.repo.BatchUpsert(ctx, vectorized); err != nil {
		return err
	}

	s.logger.Info("batch upserted",
		zap.Int("products", len(prods)),
		zap.Int("tokens", emb.TotalTokens))

	return nil
}

// Get returns a product by ID.
func (s *Service) Get(ctx context.Context, id string) (product.Product, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes a product by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Count returns the number of indexed products.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
