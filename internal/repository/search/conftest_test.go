package search

import (
	"context"
	"testing"

	"github.com/storelens/shopsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchKNNFn  func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchListFn func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "products")
	return repo, ms
}

func testEntry(key string, score float64) db.SearchEntry {
	return db.SearchEntry{
		Key:   key,
		Score: score,
		Fields: map[string]string{
			db.FieldTitle:       "Running Shoes",
			db.FieldCategory:    "Sports & Outdoors",
			db.FieldBrand:       "Nike",
			db.FieldPrice:       "89.5",
			db.FieldRating:      "4.2",
			db.FieldReviewCount: "512",
			db.FieldInStock:     "1",
			db.FieldTags:        "running,shoes",
		},
	}
}
