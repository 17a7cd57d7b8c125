package search

import (
	"context"

	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
	"github.com/storelens/shopsearch/internal/domain/search/result"
)

// Repository defines the storage contract for candidate retrieval.
type Repository interface {
	SearchKNN(
		ctx context.Context, vector []float32, filters constraint.Set, topK int,
	) ([]result.Candidate, error)

	SearchList(
		ctx context.Context, filters constraint.Set, limit int,
	) ([]result.Candidate, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
