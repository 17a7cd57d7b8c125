package products

import (
	"fmt"

	"github.com/storelens/shopsearch/internal/db"
	"github.com/storelens/shopsearch/internal/domain"
)

// buildIndex defines the FT schema for a product collection: TAG fields for
// equality constraints, NUMERIC fields for range constraints, and an
// HNSW/COSINE vector field for semantic retrieval.
func buildIndex(collection string, vectorDim int, hnsw HNSWConfig) (*db.IndexDefinition, error) {
	name := fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collection)
	prefix := fmt.Sprintf("%s%s:", domain.KeyPrefix, collection)

	return db.NewIndex(name).
		Prefix(prefix).
		Tag(db.FieldCategory).
		Tag(db.FieldBrand).
		Tag(db.FieldInStock).
		TagWithOpts(db.FieldTags, db.TagsSeparator, false).
		Numeric(db.FieldPrice).
		Numeric(db.FieldRating).
		Numeric(db.FieldReviewCount).
		VectorHNSW(db.FieldVector, vectorDim, db.DistanceCosine, hnsw.M, hnsw.EFConstruct).
		Build()
}
