package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of each processed input.
type Telemetry interface {
	// Record starts a vertex for the named unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Stderr returns a writer attached to the vertex's error stream.
	Stderr() io.Writer

	// Log records a message against the vertex.
	Log(msg string)

	// Cached marks the vertex as satisfied from the cache.
	Cached()

	// Complete marks the vertex as finished, failed when err is non-nil.
	Complete(err error)
}
