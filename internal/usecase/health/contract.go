package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexCounter reports the number of indexed products. A count failure means
// the product index is missing or unreachable.
type IndexCounter interface {
	Count(ctx context.Context) (int, error)
}
