package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/storelens/shopsearch/internal/db"
	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
	"github.com/storelens/shopsearch/internal/domain/search/result"
)

// neutralSimilarity is assigned to candidates from constraint-only listings,
// where no semantic comparison happened.
const neutralSimilarity = 1.0

// store is the consumer interface for retrieval (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store      store
	collection string
}

// New creates a search repository over a single product collection.
func New(s store, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// returnFields lists the hash fields hydrated into candidates.
// The vector blob is excluded; candidates never need it.
var returnFields = []string{
	db.FieldTitle, db.FieldDescription,
	db.FieldCategory, db.FieldBrand,
	db.FieldPrice, db.FieldRating, db.FieldReviewCount,
	db.FieldInStock, db.FieldTags,
	db.FieldVectorScore,
}

// SearchKNN retrieves the topK nearest products to vector, pre-filtered by
// the constraint set. Candidates carry their cosine similarity.
func (r *Repo) SearchKNN(
	ctx context.Context, vector []float32, filters constraint.Set, topK int,
) ([]result.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Filters:      filters,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexMissing
		}
		return nil, fmt.Errorf("search knn %s: %w", r.collection, err)
	}

	return r.parseEntries(sr, false), nil
}

// SearchList retrieves up to limit products matching the constraint set
// without any semantic comparison. Candidates get a neutral similarity.
func (r *Repo) SearchList(
	ctx context.Context, filters constraint.Set, limit int,
) ([]result.Candidate, error) {
	q := &db.ListQuery{
		IndexName:    r.indexName(),
		Filters:      filters,
		Offset:       0,
		Limit:        limit,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchList(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexMissing
		}
		return nil, fmt.Errorf("search list %s: %w", r.collection, err)
	}

	return r.parseEntries(sr, true), nil
}

func (r *Repo) parseEntries(sr *db.SearchResult, neutralScore bool) []result.Candidate {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	prefix := fmt.Sprintf("%s%s:", domain.KeyPrefix, r.collection)
	candidates := make([]result.Candidate, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		similarity := entry.Score
		if neutralScore {
			similarity = neutralSimilarity
		}
		candidates = append(candidates, parseEntryFields(id, similarity, entry.Fields))
	}

	return candidates
}

func parseEntryFields(id string, similarity float64, fields map[string]string) result.Candidate {
	price, _ := strconv.ParseFloat(fields[db.FieldPrice], 64)
	rating, _ := strconv.ParseFloat(fields[db.FieldRating], 64)
	reviewCount, _ := strconv.Atoi(fields[db.FieldReviewCount])

	var tags []string
	if raw := fields[db.FieldTags]; raw != "" {
		tags = strings.Split(raw, db.TagsSeparator)
	}

	return result.New(
		id, similarity,
		fields[db.FieldTitle],
		fields[db.FieldDescription],
		fields[db.FieldCategory],
		fields[db.FieldBrand],
		price, rating, reviewCount,
		fields[db.FieldInStock] == db.InStockTrue,
		tags,
	)
}

func (r *Repo) indexName() string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, r.collection)
}
