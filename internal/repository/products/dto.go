package products

import (
	"strconv"
	"strings"

	"github.com/storelens/shopsearch/internal/db"
	"github.com/storelens/shopsearch/internal/domain/product"
)

// buildHashFields flattens a domain Product into a map[string]string for HSET.
func buildHashFields(p *product.Product) map[string]string {
	inStock := db.InStockFalse
	if p.InStock() {
		inStock = db.InStockTrue
	}

	m := map[string]string{
		db.FieldTitle:       p.Title(),
		db.FieldDescription: p.Description(),
		db.FieldCategory:    p.Category(),
		db.FieldBrand:       p.Brand(),
		db.FieldPrice:       strconv.FormatFloat(p.Price(), 'f', -1, 64),
		db.FieldRating:      strconv.FormatFloat(p.Rating(), 'f', -1, 64),
		db.FieldReviewCount: strconv.Itoa(p.ReviewCount()),
		db.FieldInStock:     inStock,
	}

	if tags := p.Tags(); len(tags) > 0 {
		m[db.FieldTags] = strings.Join(tags, db.TagsSeparator)
	}
	if vec := p.Vector(); len(vec) > 0 {
		m[db.FieldVector] = string(db.VectorToBytes(vec))
	}

	return m
}

// parseHashFields hydrates a domain Product from flat hash fields.
func parseHashFields(id string, m map[string]string) product.Product {
	price, _ := strconv.ParseFloat(m[db.FieldPrice], 64)
	rating, _ := strconv.ParseFloat(m[db.FieldRating], 64)
	reviewCount, _ := strconv.Atoi(m[db.FieldReviewCount])

	var tags []string
	if raw := m[db.FieldTags]; raw != "" {
		tags = strings.Split(raw, db.TagsSeparator)
	}

	var vector []float32
	if raw := m[db.FieldVector]; raw != "" {
		vector, _ = db.BytesToVector([]byte(raw))
	}

	return product.Reconstruct(
		id,
		m[db.FieldTitle],
		m[db.FieldDescription],
		m[db.FieldCategory],
		m[db.FieldBrand],
		price,
		rating,
		reviewCount,
		m[db.FieldInStock] == db.InStockTrue,
		tags,
		vector,
	)
}
