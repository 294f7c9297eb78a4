package ports

import "context"

// Tracer defines the interface for operation tracing.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start begins a new span and returns a context carrying it.
	Start(ctx context.Context, name string) (context.Context, Span)

	// Shutdown flushes any pending telemetry.
	Shutdown(ctx context.Context) error
}

// Span represents a single traced operation.
type Span interface {
	// End completes the span.
	End()

	// RecordError records an error against the span.
	RecordError(err error)

	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
