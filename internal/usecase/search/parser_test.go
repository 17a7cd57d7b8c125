package search

import (
	"testing"
)

func TestParse_PriceMax(t *testing.T) {
	p := testParser()

	for _, query := range []string{
		"gaming laptop under $1000",
		"gaming laptop below 1000",
		"gaming laptop less than $1000",
	} {
		residual, cs := p.Parse(query)

		if residual != "gaming laptop" {
			t.Errorf("%q: residual = %q, expected %q", query, residual, "gaming laptop")
		}
		if cs.PriceMax() == nil || *cs.PriceMax() != 1000 {
			t.Errorf("%q: expected price max 1000, got %v", query, cs.PriceMax())
		}
		if cs.PriceMin() != nil {
			t.Errorf("%q: unexpected price min %v", query, *cs.PriceMin())
		}
	}
}

func TestParse_PriceMin(t *testing.T) {
	p := testParser()

	for _, query := range []string{
		"watches over $200",
		"watches above 200",
		"watches more than $200",
	} {
		residual, cs := p.Parse(query)

		if residual != "watches" {
			t.Errorf("%q: residual = %q, expected %q", query, residual, "watches")
		}
		if cs.PriceMin() == nil || *cs.PriceMin() != 200 {
			t.Errorf("%q: expected price min 200, got %v", query, cs.PriceMin())
		}
	}
}

func TestParse_PriceRange(t *testing.T) {
	p := testParser()

	for _, query := range []string{
		"running shoes between $50 and $100",
		"running shoes $50-$100",
		"running shoes 50 - 100",
	} {
		residual, cs := p.Parse(query)

		if residual != "running shoes" {
			t.Errorf("%q: residual = %q, expected %q", query, residual, "running shoes")
		}
		if cs.PriceMin() == nil || *cs.PriceMin() != 50 {
			t.Errorf("%q: expected price min 50, got %v", query, cs.PriceMin())
		}
		if cs.PriceMax() == nil || *cs.PriceMax() != 100 {
			t.Errorf("%q: expected price max 100, got %v", query, cs.PriceMax())
		}
	}
}

func TestParse_Rating(t *testing.T) {
	p := testParser()

	tests := []struct {
		query    string
		residual string
		rating   float64
	}{
		{"coffee maker 4.5+ stars", "coffee maker", 4.5},
		{"coffee maker 4 stars or better", "coffee maker", 4.0},
		{"highly rated wireless headphones", "wireless headphones", 4.0},
		{"top rated blender", "blender", 4.5},
	}

	for _, tt := range tests {
		residual, cs := p.Parse(tt.query)

		if residual != tt.residual {
			t.Errorf("%q: residual = %q, expected %q", tt.query, residual, tt.residual)
		}
		if cs.MinRating() == nil || *cs.MinRating() != tt.rating {
			t.Errorf("%q: expected min rating %g, got %v", tt.query, tt.rating, cs.MinRating())
		}
	}
}

func TestParse_Category(t *testing.T) {
	p := testParser()

	residual, cs := p.Parse("cheap laptop for students")

	// The keyword sets the category but stays in the semantic text.
	if cs.Category() != "Electronics" {
		t.Errorf("expected category Electronics, got %q", cs.Category())
	}
	if residual != "cheap laptop for students" {
		t.Errorf("residual = %q, keyword should not be stripped", residual)
	}
}

func TestParse_Category_FirstMentionWins(t *testing.T) {
	p := testParser()

	_, cs := p.Parse("novel about a laptop")

	if cs.Category() != "Books" {
		t.Errorf("expected category Books (first mention), got %q", cs.Category())
	}
}

func TestParse_Brand(t *testing.T) {
	p := testParser()

	residual, cs := p.Parse("sony noise cancelling headphones")

	if cs.Brand() != "Sony" {
		t.Errorf("expected brand Sony (configured casing), got %q", cs.Brand())
	}
	if residual != "sony noise cancelling headphones" {
		t.Errorf("residual = %q, brand mention should not be stripped", residual)
	}
}

func TestParse_MultiWordBrand(t *testing.T) {
	p := testParser()

	// "under" here is part of the brand name, not a price phrase.
	_, cs := p.Parse("under armour running shoes")

	if cs.Brand() != "Under Armour" {
		t.Errorf("expected brand Under Armour, got %q", cs.Brand())
	}
	if cs.PriceMax() != nil {
		t.Errorf("unexpected price max %v", *cs.PriceMax())
	}
}

func TestParse_LastMentionWins(t *testing.T) {
	p := testParser()

	_, cs := p.Parse("under $50 or under $80")

	if cs.PriceMax() == nil || *cs.PriceMax() != 80 {
		t.Errorf("expected price max 80 (last mention), got %v", cs.PriceMax())
	}
}

func TestParse_CombinedConstraints(t *testing.T) {
	p := testParser()

	residual, cs := p.Parse("highly rated nike shoes under $120")

	if residual != "nike shoes" {
		t.Errorf("residual = %q, expected %q", residual, "nike shoes")
	}
	if cs.PriceMax() == nil || *cs.PriceMax() != 120 {
		t.Errorf("expected price max 120, got %v", cs.PriceMax())
	}
	if cs.MinRating() == nil || *cs.MinRating() != 4.0 {
		t.Errorf("expected min rating 4.0, got %v", cs.MinRating())
	}
	if cs.Brand() != "Nike" {
		t.Errorf("expected brand Nike, got %q", cs.Brand())
	}
	if cs.Category() != "Sports & Outdoors" {
		t.Errorf("expected category Sports & Outdoors, got %q", cs.Category())
	}
}

func TestParse_NoConstraints(t *testing.T) {
	p := testParser()

	residual, cs := p.Parse("Cozy Blanket for Winter")

	if residual != "cozy blanket for winter" {
		t.Errorf("residual = %q", residual)
	}
	if !cs.IsEmpty() {
		t.Errorf("expected empty constraint set, got %+v", cs)
	}
}

func TestParse_ConstraintsOnly(t *testing.T) {
	p := testParser()

	residual, cs := p.Parse("under $100")

	if residual != "" {
		t.Errorf("expected empty residual, got %q", residual)
	}
	if cs.PriceMax() == nil || *cs.PriceMax() != 100 {
		t.Errorf("expected price max 100, got %v", cs.PriceMax())
	}
}

func TestParse_DecimalAmounts(t *testing.T) {
	p := testParser()

	_, cs := p.Parse("earbuds under $19.99")

	if cs.PriceMax() == nil || *cs.PriceMax() != 19.99 {
		t.Errorf("expected price max 19.99, got %v", cs.PriceMax())
	}
}
