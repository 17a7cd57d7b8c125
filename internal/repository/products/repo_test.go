package products

import (
	"context"
	"errors"
	"testing"

	"github.com/storelens/shopsearch/internal/db"
	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/product"
)

func TestUpsert_Created(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	var gotFields map[string]string
	ms.existsFn = func(_ context.Context, key string) (bool, error) {
		return false, nil
	}
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey = key
		gotFields = fields
		return nil
	}

	p := testProduct(t)
	created, err := repo.Upsert(context.Background(), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new product")
	}
	if gotKey != "shopsearch:products:prod-1" {
		t.Errorf("unexpected key: %s", gotKey)
	}
	if gotFields[db.FieldTitle] != "Wireless Headphones" {
		t.Errorf("unexpected title field: %s", gotFields[db.FieldTitle])
	}
	if gotFields[db.FieldInStock] != db.InStockTrue {
		t.Errorf("expected in_stock=1, got %s", gotFields[db.FieldInStock])
	}
	if gotFields[db.FieldTags] != "wireless,audio" {
		t.Errorf("unexpected tags field: %s", gotFields[db.FieldTags])
	}
	if len(gotFields[db.FieldVector]) != 1536*4 {
		t.Errorf("unexpected vector blob size: %d", len(gotFields[db.FieldVector]))
	}
}

func TestUpsert_Replaced(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.existsFn = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}

	p := testProduct(t)
	created, err := repo.Upsert(context.Background(), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing product")
	}
}

func TestBatchUpsert(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotItems []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		gotItems = items
		return nil
	}

	p := testProduct(t)
	if err := repo.BatchUpsert(context.Background(), []product.Product{p}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(gotItems))
	}
	if gotItems[0].Key != "shopsearch:products:prod-1" {
		t.Errorf("unexpected key: %s", gotItems[0].Key)
	}
}

func TestBatchUpsert_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetMultiFn = func(_ context.Context, _ []db.HashSetItem) error {
		t.Fatal("no round-trip expected for empty batch")
		return nil
	}
	if err := repo.BatchUpsert(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "shopsearch:products:prod-1" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{
			db.FieldTitle:       "Wireless Headphones",
			db.FieldCategory:    "Electronics",
			db.FieldBrand:       "Sony",
			db.FieldPrice:       "199.99",
			db.FieldRating:      "4.5",
			db.FieldReviewCount: "2847",
			db.FieldInStock:     "1",
			db.FieldTags:        "wireless,audio",
		}, nil
	}

	p, err := repo.Get(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title() != "Wireless Headphones" {
		t.Errorf("unexpected title: %s", p.Title())
	}
	if p.Price() != 199.99 {
		t.Errorf("unexpected price: %g", p.Price())
	}
	if p.ReviewCount() != 2847 {
		t.Errorf("unexpected review count: %d", p.ReviewCount())
	}
	if !p.InStock() {
		t.Error("expected in stock")
	}
	if len(p.Tags()) != 2 || p.Tags()[0] != "wireless" {
		t.Errorf("unexpected tags: %v", p.Tags())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.existsFn = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, ms := newTestRepo(t)

	deleted := false
	ms.existsFn = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	ms.delFn = func(_ context.Context, key string) error {
		deleted = true
		return nil
	}

	if err := repo.Delete(context.Background(), "prod-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected DEL to be issued")
	}
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotDef *db.IndexDefinition
	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		gotDef = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotDef == nil {
		t.Fatal("expected FT.CREATE to be issued")
	}
	if gotDef.Name != "shopsearch:products:idx" {
		t.Errorf("unexpected index name: %s", gotDef.Name)
	}
	if len(gotDef.Prefixes) != 1 || gotDef.Prefixes[0] != "shopsearch:products:" {
		t.Errorf("unexpected prefixes: %v", gotDef.Prefixes)
	}
	// category, brand, in_stock, tags, price, rating, review_count, __vector
	if len(gotDef.Fields) != 8 {
		t.Errorf("expected 8 indexed fields, got %d", len(gotDef.Fields))
	}
}

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		t.Fatal("FT.CREATE must not be issued when the index exists")
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_RaceTolerated(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		return db.ErrIndexExists
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("expected race to be tolerated, got %v", err)
	}
}

func TestDropIndex_Missing(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.dropIndexFn = func(_ context.Context, _ string) error {
		return db.ErrIndexNotFound
	}

	err := repo.DropIndex(context.Background())
	if !errors.Is(err, domain.ErrIndexMissing) {
		t.Errorf("expected ErrIndexMissing, got %v", err)
	}
}

func TestCount(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchCountFn = func(_ context.Context, index string) (int, error) {
		if index != "shopsearch:products:idx" {
			t.Errorf("unexpected index: %s", index)
		}
		return 42, nil
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
}

func TestHashFieldsRoundTrip(t *testing.T) {
	p := testProduct(t)
	m := buildHashFields(&p)
	back := parseHashFields(p.ID(), m)

	if back.Title() != p.Title() || back.Brand() != p.Brand() {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if back.Price() != p.Price() || back.Rating() != p.Rating() {
		t.Errorf("numeric round trip mismatch")
	}
	if back.InStock() != p.InStock() {
		t.Errorf("availability round trip mismatch")
	}
	if len(back.Vector()) != len(p.Vector()) {
		t.Errorf("vector round trip mismatch: %d != %d", len(back.Vector()), len(p.Vector()))
	}
}
