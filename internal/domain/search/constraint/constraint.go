package constraint

import "fmt"

// Set is a conjunctive group of structured constraints evaluated against
// product metadata. All set fields must hold for a candidate to be returned.
// The zero value matches everything.
type Set struct {
	priceMin    *float64
	priceMax    *float64
	category    string
	brand       string
	minRating   *float64
	inStockOnly bool
}

// SetPriceMin sets a price floor. A later call replaces an earlier one (last wins).
func (s *Set) SetPriceMin(v float64) { s.priceMin = &v }

// SetPriceMax sets a price ceiling. A later call replaces an earlier one (last wins).
func (s *Set) SetPriceMax(v float64) { s.priceMax = &v }

// SetCategory sets a category equality constraint.
func (s *Set) SetCategory(c string) { s.category = c }

// SetBrand sets a brand equality constraint.
func (s *Set) SetBrand(b string) { s.brand = b }

// SetMinRating sets a minimum rating constraint. A later call replaces an earlier one.
func (s *Set) SetMinRating(v float64) { s.minRating = &v }

// SetInStockOnly restricts results to available products.
func (s *Set) SetInStockOnly() { s.inStockOnly = true }

// PriceMin returns the price floor, or nil.
func (s *Set) PriceMin() *float64 { return s.priceMin }

// PriceMax returns the price ceiling, or nil.
func (s *Set) PriceMax() *float64 { return s.priceMax }

// Category returns the category constraint, or "".
func (s *Set) Category() string { return s.category }

// Brand returns the brand constraint, or "".
func (s *Set) Brand() string { return s.brand }

// MinRating returns the minimum rating constraint, or nil.
func (s *Set) MinRating() *float64 { return s.minRating }

// InStockOnly reports whether only available products are requested.
func (s *Set) InStockOnly() bool { return s.inStockOnly }

// IsEmpty reports whether the set has no constraints.
func (s *Set) IsEmpty() bool {
	return s.priceMin == nil && s.priceMax == nil &&
		s.category == "" && s.brand == "" &&
		s.minRating == nil && !s.inStockOnly
}

// Validate checks every constraint value against its domain.
// Overlapping or contradictory bounds are not treated as errors; the index
// simply returns no matches for an empty range.
func (s *Set) Validate() error {
	if s.priceMin != nil && *s.priceMin < 0 {
		return fmt.Errorf("price floor must be non-negative, got %g", *s.priceMin)
	}
	if s.priceMax != nil && *s.priceMax < 0 {
		return fmt.Errorf("price ceiling must be non-negative, got %g", *s.priceMax)
	}
	if s.minRating != nil && (*s.minRating < 0 || *s.minRating > 5) {
		return fmt.Errorf("minimum rating must be between 0 and 5, got %g", *s.minRating)
	}
	return nil
}

// Merge overlays override on top of base: every constraint set in override
// replaces the corresponding one in base. Used to let explicit API filters
// win over constraints parsed out of the query text.
func Merge(base, override Set) Set {
	merged := base
	if override.priceMin != nil {
		merged.priceMin = override.priceMin
	}
	if override.priceMax != nil {
		merged.priceMax = override.priceMax
	}
	if override.category != "" {
		merged.category = override.category
	}
	if override.brand != "" {
		merged.brand = override.brand
	}
	if override.minRating != nil {
		merged.minRating = override.minRating
	}
	if override.inStockOnly {
		merged.inStockOnly = true
	}
	return merged
}
