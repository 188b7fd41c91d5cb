package domain

import "context"

// Sink defines the interface for emitting derived metrics
type Sink interface {
	Emit(ctx context.Context, m Metrics) error
}
