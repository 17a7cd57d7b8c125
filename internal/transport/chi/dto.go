package chi

import (
	"fmt"

	"github.com/storelens/shopsearch/internal/domain/product"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
	"github.com/storelens/shopsearch/internal/domain/search/result"
)

// errorCode identifies a machine-readable error class in API responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeInvalidConstraint      errorCode = "invalid_constraint"
	codeProductNotFound        errorCode = "product_not_found"
	codeBatchTooLarge          errorCode = "batch_too_large"
	codeRetrievalFailed        errorCode = "retrieval_failed"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeUnauthorized           errorCode = "unauthorized"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type filtersDTO struct {
	PriceMin    *float64 `json:"price_min,omitempty"`
	PriceMax    *float64 `json:"price_max,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	MinRating   *float64 `json:"min_rating,omitempty"`
	InStockOnly bool     `json:"in_stock_only,omitempty"`
}

type searchRequestDTO struct {
	Query   string      `json:"query"`
	Filters *filtersDTO `json:"filters,omitempty"`
	Limit   int         `json:"limit,omitempty"`
}

type searchResultItemDTO struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Category       string           `json:"category,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	Price          float64          `json:"price"`
	Rating         float64          `json:"rating"`
	ReviewCount    int              `json:"review_count"`
	InStock        bool             `json:"in_stock"`
	Tags           []string         `json:"tags,omitempty"`
	Similarity     float64          `json:"similarity"`
	Score          float64          `json:"score"`
	ScoreBreakdown result.Breakdown `json:"score_breakdown"`
}

type searchResponseDTO struct {
	Items []searchResultItemDTO `json:"items"`
	Total int                   `json:"total"`
	Limit int                   `json:"limit"`
}

type productDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	InStock     bool     `json:"in_stock"`
	Tags        []string `json:"tags,omitempty"`
}

type batchUpsertRequestDTO struct {
	Products []productDTO `json:"products"`
}

type batchUpsertResponseDTO struct {
	Upserted int `json:"upserted"`
}

type suggestResponseDTO struct {
	Suggestions []string `json:"suggestions"`
}

type healthResponseDTO struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Products int               `json:"products,omitempty"`
}

func constraintsFromDTO(f *filtersDTO) constraint.Set {
	var cs constraint.Set
	if f == nil {
		return cs
	}
	if f.PriceMin != nil {
		cs.SetPriceMin(*f.PriceMin)
	}
	if f.PriceMax != nil {
		cs.SetPriceMax(*f.PriceMax)
	}
	if f.Category != "" {
		cs.SetCategory(f.Category)
	}
	if f.Brand != "" {
		cs.SetBrand(f.Brand)
	}
	if f.MinRating != nil {
		cs.SetMinRating(*f.MinRating)
	}
	if f.InStockOnly {
		cs.SetInStockOnly()
	}
	return cs
}

func productFromDTO(id string, dto productDTO) (product.Product, error) {
	p, err := product.New(
		id, dto.Title, dto.Description, dto.Category, dto.Brand,
		dto.Price, dto.Rating, dto.ReviewCount, dto.InStock, dto.Tags,
	)
	if err != nil {
		return product.Product{}, fmt.Errorf("build product: %w", err)
	}
	return p, nil
}

func productToDTO(p *product.Product) productDTO {
	return productDTO{
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

func searchResultToDTO(c *result.Candidate) searchResultItemDTO {
	return searchResultItemDTO{
		ID:             c.ID(),
		Title:          c.Title(),
		Description:    c.Description(),
		Category:       c.Category(),
		Brand:          c.Brand(),
		Price:          c.Price(),
		Rating:         c.Rating(),
		ReviewCount:    c.ReviewCount(),
		InStock:        c.InStock(),
		Tags:           c.Tags(),
		Similarity:     c.Similarity(),
		Score:          c.FinalScore(),
		ScoreBreakdown: c.ScoreBreakdown(),
	}
}
