package shopsearch

import (
	"github.com/storelens/shopsearch/internal/domain/product"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
	"github.com/storelens/shopsearch/internal/domain/search/result"
)

// Product is a catalog record as seen by library consumers.
type Product struct {
	ID          string
	Title       string
	Description string
	Category    string
	Brand       string
	Price       float64
	Rating      float64
	ReviewCount int
	InStock     bool
	Tags        []string
}

// ScoreBreakdown itemizes the components of a final search score.
type ScoreBreakdown struct {
	Semantic            float64
	Rating              float64
	Popularity          float64
	MatchBonus          float64
	AvailabilityPenalty float64
}

// SearchResult is a ranked product with its similarity and final score.
type SearchResult struct {
	Product
	Similarity float64
	Score      float64
	Breakdown  ScoreBreakdown
}

// SearchOptions holds optional structured filters and a result limit.
// Explicit filters override any constraints parsed from the query text.
type SearchOptions struct {
	PriceMin    *float64
	PriceMax    *float64
	Category    string
	Brand       string
	MinRating   *float64
	InStockOnly bool
	Limit       int
}

// PriceBand is a named price range facet. A nil Max means open-ended.
type PriceBand struct {
	Label string
	Min   float64
	Max   *float64
}

// FilterOptions lists the facets available for structured filtering.
type FilterOptions struct {
	Categories     []string
	Brands         []string
	PriceBands     []PriceBand
	RatingMinimums []float64
	Availability   []string
}

// HealthReport aggregates component health.
type HealthReport struct {
	Status   string
	Checks   map[string]string
	Products int
}

func (p Product) toDomain() (product.Product, error) {
	return product.New(
		p.ID, p.Title, p.Description, p.Category, p.Brand,
		p.Price, p.Rating, p.ReviewCount, p.InStock, p.Tags,
	)
}

func productFromDomain(p *product.Product) Product {
	return Product{
		ID:          p.ID(),
		Title:       p.Title(),
		Description: p.Description(),
		Category:    p.Category(),
		Brand:       p.Brand(),
		Price:       p.Price(),
		Rating:      p.Rating(),
		ReviewCount: p.ReviewCount(),
		InStock:     p.InStock(),
		Tags:        p.Tags(),
	}
}

func (o *SearchOptions) toConstraints() constraint.Set {
	var cs constraint.Set
	if o == nil {
		return cs
	}
	if o.PriceMin != nil {
		cs.SetPriceMin(*o.PriceMin)
	}
	if o.PriceMax != nil {
		cs.SetPriceMax(*o.PriceMax)
	}
	if o.Category != "" {
		cs.SetCategory(o.Category)
	}
	if o.Brand != "" {
		cs.SetBrand(o.Brand)
	}
	if o.MinRating != nil {
		cs.SetMinRating(*o.MinRating)
	}
	if o.InStockOnly {
		cs.SetInStockOnly()
	}
	return cs
}

func resultFromCandidate(c *result.Candidate) SearchResult {
	b := c.ScoreBreakdown()
	return SearchResult{
		Product: Product{
			ID:          c.ID(),
			Title:       c.Title(),
			Description: c.Description(),
			Category:    c.Category(),
			Brand:       c.Brand(),
			Price:       c.Price(),
			Rating:      c.Rating(),
			ReviewCount: c.ReviewCount(),
			InStock:     c.InStock(),
			Tags:        c.Tags(),
		},
		Similarity: c.Similarity(),
		Score:      c.FinalScore(),
		Breakdown: ScoreBreakdown{
			Semantic:            b.Semantic,
			Rating:              b.Rating,
			Popularity:          b.Popularity,
			MatchBonus:          b.MatchBonus,
			AvailabilityPenalty: b.AvailabilityPenalty,
		},
	}
}
