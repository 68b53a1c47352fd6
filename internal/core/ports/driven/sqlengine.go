package driven

import (
	"context"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

// SQLEngine opens byte buffers as queryable relational databases.
// Implementations may run the actual engine out of process; every call is
// treated as potentially asynchronous and takes a context.
type SQLEngine interface {
	// Open materialises a database from raw bytes.
	// Returns domain.ErrOpen (wrapped) on malformed or corrupt input.
	Open(ctx context.Context, data []byte) (Database, error)
}

// Database is one open database handle.
type Database interface {
	// Query executes SQL text and returns every result row with its
	// column order preserved. Returns domain.ErrQuery (wrapped) on
	// invalid SQL or a runtime constraint violation.
	Query(ctx context.Context, sqlText string) ([]domain.Row, error)

	// Export round-trips the handle back to a byte buffer.
	Export(ctx context.Context) ([]byte, error)

	// Close releases the handle and any scratch resources.
	Close() error
}
