package search

import (
	"context"
	"errors"
	"testing"

	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
	"github.com/storelens/shopsearch/internal/domain/search/request"
	"github.com/storelens/shopsearch/internal/domain/search/result"
)

func mustRequest(t *testing.T, query string, filters constraint.Set, limit int) request.Request {
	t.Helper()
	req, err := request.New(query, filters, limit)
	if err != nil {
		t.Fatalf("request.New failed: %v", err)
	}
	return req
}

func TestSearch_SemanticPipeline(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{}

	var gotFilters constraint.Set
	var gotTopK int
	repo.searchKNNFn = func(_ context.Context, vector []float32, filters constraint.Set, topK int) ([]result.Candidate, error) {
		if len(vector) != 3 {
			t.Errorf("expected 3-dim vector, got %d", len(vector))
		}
		gotFilters = filters
		gotTopK = topK
		return []result.Candidate{
			testCandidate("p1", 0.9),
			testCandidate("p2", 0.7),
		}, nil
	}

	svc := newTestService(t, repo, embed)
	req := mustRequest(t, "gaming laptop under $1000", constraint.Set{}, 10)

	results, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if embed.lastText != "gaming laptop" {
		t.Errorf("embedded text = %q, expected constraint phrases stripped", embed.lastText)
	}
	if gotFilters.PriceMax() == nil || *gotFilters.PriceMax() != 1000 {
		t.Errorf("expected parsed price max 1000 in filters, got %v", gotFilters.PriceMax())
	}
	if gotFilters.Category() != "Electronics" {
		t.Errorf("expected parsed category Electronics, got %q", gotFilters.Category())
	}
	if gotTopK != 20 {
		t.Errorf("topK = %d, expected limit*2 over-fetch", gotTopK)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID() != "p1" {
		t.Errorf("expected highest-similarity candidate first, got %s", results[0].ID())
	}
	if results[0].FinalScore() <= 0 {
		t.Errorf("expected scored results, got final score %f", results[0].FinalScore())
	}
	if repo.listCalls != 0 {
		t.Errorf("SearchList should not be called in semantic mode")
	}
}

func TestSearch_FilterOnly_SkipsEmbedding(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{}

	repo.searchListFn = func(_ context.Context, filters constraint.Set, limit int) ([]result.Candidate, error) {
		if filters.PriceMax() == nil || *filters.PriceMax() != 100 {
			t.Errorf("expected price max 100, got %v", filters.PriceMax())
		}
		return []result.Candidate{testCandidate("p1", 1.0)}, nil
	}

	svc := newTestService(t, repo, embed)
	req := mustRequest(t, "under $100", constraint.Set{}, 10)

	results, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if embed.calls != 0 {
		t.Errorf("expected no embedding calls in filter-only mode, got %d", embed.calls)
	}
	if repo.knnCalls != 0 {
		t.Errorf("SearchKNN should not be called in filter-only mode")
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestSearch_ExplicitFiltersWin(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{}

	var gotFilters constraint.Set
	repo.searchKNNFn = func(_ context.Context, _ []float32, filters constraint.Set, _ int) ([]result.Candidate, error) {
		gotFilters = filters
		return nil, nil
	}

	svc := newTestService(t, repo, embed)

	var explicit constraint.Set
	explicit.SetPriceMax(500)
	req := mustRequest(t, "gaming laptop under $1000", explicit, 10)

	if _, err := svc.Search(context.Background(), req); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if gotFilters.PriceMax() == nil || *gotFilters.PriceMax() != 500 {
		t.Errorf("expected explicit price max 500 to override parsed 1000, got %v",
			gotFilters.PriceMax())
	}
	// Parsed category survives the merge: explicit filters did not set one.
	if gotFilters.Category() != "Electronics" {
		t.Errorf("expected parsed category to survive merge, got %q", gotFilters.Category())
	}
}

func TestSearch_InvalidConstraint(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{}
	svc := newTestService(t, repo, embed)

	var bad constraint.Set
	bad.SetMinRating(7)
	req := mustRequest(t, "headphones", bad, 10)

	_, err := svc.Search(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidConstraint) {
		t.Fatalf("expected ErrInvalidConstraint, got %v", err)
	}
	if embed.calls != 0 || repo.knnCalls != 0 {
		t.Error("no retrieval should happen for invalid constraints")
	}
}

func TestSearch_EmbedderError(t *testing.T) {
	repo := &mockRepo{}
	embed := &mockEmbedder{
		embedFn: func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{}, domain.ErrEmbeddingProviderError
		},
	}
	svc := newTestService(t, repo, embed)
	req := mustRequest(t, "headphones", constraint.Set{}, 10)

	_, err := svc.Search(context.Background(), req)
	if !errors.Is(err, domain.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestSearch_IndexError(t *testing.T) {
	repo := &mockRepo{
		searchKNNFn: func(_ context.Context, _ []float32, _ constraint.Set, _ int) ([]result.Candidate, error) {
			return nil, domain.ErrIndexMissing
		},
	}
	svc := newTestService(t, repo, &mockEmbedder{})
	req := mustRequest(t, "headphones", constraint.Set{}, 10)

	_, err := svc.Search(context.Background(), req)
	if !errors.Is(err, domain.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}
}

func TestSearch_SimilarityThreshold(t *testing.T) {
	repo := &mockRepo{
		searchKNNFn: func(_ context.Context, _ []float32, _ constraint.Set, _ int) ([]result.Candidate, error) {
			return []result.Candidate{
				testCandidate("keep", 0.8),
				testCandidate("drop", 0.1), // below the 0.3 threshold
			}, nil
		},
	}
	svc := newTestService(t, repo, &mockEmbedder{})
	req := mustRequest(t, "headphones", constraint.Set{}, 10)

	results, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 || results[0].ID() != "keep" {
		t.Fatalf("expected only above-threshold candidate, got %d results", len(results))
	}
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	repo := &mockRepo{
		searchKNNFn: func(_ context.Context, _ []float32, _ constraint.Set, _ int) ([]result.Candidate, error) {
			return []result.Candidate{
				testCandidate("p1", 0.9),
				testCandidate("p2", 0.8),
				testCandidate("p3", 0.7),
				testCandidate("p4", 0.6),
			}, nil
		},
	}
	svc := newTestService(t, repo, &mockEmbedder{})
	req := mustRequest(t, "headphones", constraint.Set{}, 2)

	results, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results after truncation, got %d", len(results))
	}
	if results[0].ID() != "p1" || results[1].ID() != "p2" {
		t.Errorf("unexpected order after truncation: %s, %s",
			results[0].ID(), results[1].ID())
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	repo := &mockRepo{
		searchKNNFn: func(_ context.Context, _ []float32, _ constraint.Set, _ int) ([]result.Candidate, error) {
			return nil, nil
		},
	}
	svc := newTestService(t, repo, &mockEmbedder{})
	req := mustRequest(t, "headphones", constraint.Set{}, 10)

	results, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("empty result set is not an error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestSuggestions(t *testing.T) {
	svc := newTestService(t, &mockRepo{}, &mockEmbedder{})

	got := svc.Suggestions("laptop", 5)
	if len(got) != 1 || got[0] != "gaming laptop" {
		t.Errorf("Suggestions(laptop) = %v", got)
	}

	got = svc.Suggestions("electronics", 5)
	if len(got) != 1 || got[0] != "products in Electronics" {
		t.Errorf("Suggestions(electronics) = %v", got)
	}

	// Empty partial matches everything, capped at limit.
	got = svc.Suggestions("", 3)
	if len(got) != 3 {
		t.Errorf("Suggestions(\"\") returned %d items, expected 3", len(got))
	}

	got = svc.Suggestions("no such thing", 5)
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestFilterOptions(t *testing.T) {
	svc := newTestService(t, &mockRepo{}, &mockEmbedder{})

	opts := svc.FilterOptions()

	if len(opts.Categories) != 2 || opts.Categories[0] != "Electronics" {
		t.Errorf("unexpected categories: %v", opts.Categories)
	}
	if len(opts.Brands) != 2 {
		t.Errorf("unexpected brands: %v", opts.Brands)
	}
	if len(opts.PriceBands) != 4 {
		t.Fatalf("expected 4 price bands, got %d", len(opts.PriceBands))
	}
	if opts.PriceBands[3].Max != nil {
		t.Errorf("luxury band should be open-ended")
	}
	if len(opts.RatingMinimums) != 5 || opts.RatingMinimums[0] != 3.0 {
		t.Errorf("unexpected rating minimums: %v", opts.RatingMinimums)
	}
}
