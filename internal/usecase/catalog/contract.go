package catalog

import (
	"context"

	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/product"
)

// Repository defines the storage contract for catalog management.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	DropIndex(ctx context.Context) error
	Upsert(ctx context.Context, p *product.Product) (created bool, err error)
	BatchUpsert(ctx context.Context, prods []product.Product) error
	Get(ctx context.Context, id string) (product.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Embedder vectorizes product text, one record or a whole batch at a time.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
