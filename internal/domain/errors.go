package domain

import "errors"

var (
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct signals a product record that fails validation.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInvalidConstraint signals a constraint value outside its domain,
	// rejected before any retrieval call is made.
	ErrInvalidConstraint = errors.New("invalid constraint")
	// ErrInvalidQuery signals query text that fails validation, such as
	// exceeding the maximum length. Distinct from constraint violations.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRetrieval signals that the vector index or the embedding service
	// failed. It is propagated to the caller unchanged, never retried, and a
	// failed search returns no partial candidate list.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrIndexMissing signals that the product index has not been provisioned.
	ErrIndexMissing = errors.New("product index missing")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrBatchTooLarge signals a bulk upsert exceeding the configured batch size.
	ErrBatchTooLarge = errors.New("batch too large")
)
