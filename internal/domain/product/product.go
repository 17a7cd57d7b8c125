package product

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxDescriptionSize is the maximum description size in bytes.
const MaxDescriptionSize = 16384 // 16KB

// Product is the catalog record aggregate (immutable value object).
// Once indexed it only changes via full replace (upsert).
type Product struct {
	id          string
	title       string
	description string
	category    string
	brand       string
	price       float64
	rating      float64
	reviewCount int
	inStock     bool
	tags        []string
	vector      []float32
}

// New validates and creates a Product.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Price >= 0, rating in [0, 5], review count >= 0.
func New(
	id, title, description, category, brand string,
	price, rating float64, reviewCount int,
	inStock bool, tags []string,
) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("product ID is required")
	}
	if len(id) > 256 {
		return Product{}, fmt.Errorf("product ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Product{}, fmt.Errorf("product ID must be alphanumeric with underscores and hyphens")
	}
	if title == "" {
		return Product{}, fmt.Errorf("title is required")
	}
	if len(description) > MaxDescriptionSize {
		return Product{}, fmt.Errorf("description too large (max %d bytes)", MaxDescriptionSize)
	}
	if price < 0 {
		return Product{}, fmt.Errorf("price must be non-negative, got %g", price)
	}
	if rating < 0 || rating > 5 {
		return Product{}, fmt.Errorf("rating must be between 0 and 5, got %g", rating)
	}
	if reviewCount < 0 {
		return Product{}, fmt.Errorf("review count must be non-negative, got %d", reviewCount)
	}

	return Product{
		id:          id,
		title:       title,
		description: description,
		category:    category,
		brand:       brand,
		price:       price,
		rating:      rating,
		reviewCount: reviewCount,
		inStock:     inStock,
		tags:        cloneTags(tags),
	}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(
	id, title, description, category, brand string,
	price, rating float64, reviewCount int,
	inStock bool, tags []string, vector []float32,
) Product {
	return Product{
		id: id, title: title, description: description,
		category: category, brand: brand,
		price: price, rating: rating, reviewCount: reviewCount,
		inStock: inStock, tags: tags, vector: vector,
	}
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Title returns the product title.
func (p *Product) Title() string { return p.title }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// Category returns the product category.
func (p *Product) Category() string { return p.category }

// Brand returns the product brand.
func (p *Product) Brand() string { return p.brand }

// Price returns the product price.
func (p *Product) Price() float64 { return p.price }

// Rating returns the average rating in [0, 5].
func (p *Product) Rating() float64 { return p.rating }

// ReviewCount returns the number of reviews.
func (p *Product) ReviewCount() int { return p.reviewCount }

// InStock reports availability.
func (p *Product) InStock() bool { return p.inStock }

// Tags returns the product tags.
func (p *Product) Tags() []string { return p.tags }

// Vector returns the embedding vector.
func (p *Product) Vector() []float32 { return p.vector }

// WithVector returns a copy with the given embedding vector set.
func (p *Product) WithVector(v []float32) Product {
	c := *p
	c.vector = v
	return c
}

// EmbeddingText builds the text that gets vectorized for this product:
// title, description, category and tags concatenated.
func (p *Product) EmbeddingText() string {
	parts := make([]string, 0, 4)
	parts = append(parts, p.title)
	if p.description != "" {
		parts = append(parts, p.description)
	}
	if p.category != "" {
		parts = append(parts, p.category)
	}
	if len(p.tags) > 0 {
		parts = append(parts, strings.Join(p.tags, " "))
	}
	return strings.Join(parts, ". ")
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
