package request

import (
	"fmt"

	"github.com/storelens/shopsearch/internal/domain"
	"github.com/storelens/shopsearch/internal/domain/search/constraint"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	// DefaultLimit is used when the caller does not specify a limit.
	DefaultLimit = 20
	// MaxLimit caps the number of results per search.
	MaxLimit = 100
)

// Limits holds the result count bounds for a deployment. The zero value
// falls back to the package defaults.
type Limits struct {
	// Default is used when the caller does not specify a limit.
	Default int
	// Max caps the number of results per search.
	Max int
}

// DefaultLimits returns the package default result count bounds.
func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

// Request is a validated search query: free-form text plus optional explicit
// structured constraints. The query may be empty, which means match-all.
type Request struct {
	query   string
	filters constraint.Set
	limit   int
}

// New validates and normalizes search parameters with the default limits.
func New(query string, filters constraint.Set, limit int) (Request, error) {
	return NewWithLimits(query, filters, limit, DefaultLimits())
}

// NewWithLimits validates and normalizes search parameters against the given
// limits. limit <= 0 falls back to lims.Default; limit > lims.Max is clamped.
// Unset limit fields take the package defaults.
func NewWithLimits(query string, filters constraint.Set, limit int, lims Limits) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)",
			domain.ErrInvalidQuery, MaxQueryLength)
	}

	if lims.Default <= 0 {
		lims.Default = DefaultLimit
	}
	if lims.Max <= 0 {
		lims.Max = MaxLimit
	}

	if limit <= 0 {
		limit = lims.Default
	}
	if limit > lims.Max {
		limit = lims.Max
	}

	return Request{query: query, filters: filters, limit: limit}, nil
}

// Query returns the raw search query text.
func (r *Request) Query() string { return r.query }

// Filters returns the explicit structured constraints supplied by the caller.
func (r *Request) Filters() constraint.Set { return r.filters }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
