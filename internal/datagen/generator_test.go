package datagen

import (
	"testing"
)

func TestProducts_Deterministic(t *testing.T) {
	first, err := New(42).Products(50)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, err := New(42).Products(50)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(first) != 50 || len(second) != 50 {
		t.Fatalf("expected 50 products, got %d and %d", len(first), len(second))
	}

	for i := range first {
		if first[i].ID() != second[i].ID() {
			t.Fatalf("product %d: IDs differ for the same seed: %s vs %s",
				i, first[i].ID(), second[i].ID())
		}
		if first[i].Title() != second[i].Title() ||
			first[i].Price() != second[i].Price() ||
			first[i].Description() != second[i].Description() {
			t.Fatalf("product %d differs for the same seed", i)
		}
	}
}

func TestProducts_DifferentSeeds(t *testing.T) {
	first, err := New(1).Products(10)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, err := New(2).Products(10)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	same := 0
	for i := range first {
		if first[i].ID() == second[i].ID() {
			same++
		}
	}
	if same == len(first) {
		t.Error("different seeds produced identical catalogs")
	}
}

func TestProducts_ValidFields(t *testing.T) {
	prods, err := New(7).Products(200)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	categories := make(map[string]int)
	for _, p := range prods {
		if p.Title() == "" {
			t.Fatal("generated product without title")
		}
		if p.Brand() == "" || p.Category() == "" {
			t.Fatalf("product %s missing brand or category", p.ID())
		}
		if p.Price() < 0 {
			t.Fatalf("product %s has negative price %f", p.ID(), p.Price())
		}
		if p.Rating() < 3.0 || p.Rating() > 5.0 {
			t.Fatalf("product %s has rating %f outside [3, 5]", p.ID(), p.Rating())
		}
		if p.ReviewCount() < 10 || p.ReviewCount() > 5000 {
			t.Fatalf("product %s has review count %d outside [10, 5000]", p.ID(), p.ReviewCount())
		}
		if len(p.Tags()) < 3 {
			t.Fatalf("product %s has too few tags: %v", p.ID(), p.Tags())
		}
		if p.EmbeddingText() == "" {
			t.Fatalf("product %s has empty embedding text", p.ID())
		}
		categories[p.Category()]++
	}

	// 200 draws should touch every category template.
	if len(categories) != len(templates) {
		t.Errorf("expected all %d categories to appear, got %v", len(templates), categories)
	}
}

func TestProducts_MostlyInStock(t *testing.T) {
	prods, err := New(11).Products(500)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	inStock := 0
	for _, p := range prods {
		if p.InStock() {
			inStock++
		}
	}

	// 90% in stock with generous slack for the seed.
	if inStock < 400 || inStock == len(prods) {
		t.Errorf("in-stock count %d out of %d looks wrong", inStock, len(prods))
	}
}
