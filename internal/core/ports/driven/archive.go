package driven

import (
	"context"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

// ArchiveOpener opens byte buffers as containers of named member entries.
// The path hints at the container format (zip, 7z, rar, tar).
type ArchiveOpener interface {
	// Open returns an archive handle for the buffer.
	// Returns domain.ErrOpen (wrapped) when the buffer is not a valid
	// archive, or domain.ErrUnsupportedFormat for an unknown extension.
	Open(ctx context.Context, data []byte, path string) (Archive, error)
}

// Archive is one open container handle. Members are listed eagerly;
// bytes are materialised only on Extract.
type Archive interface {
	// Members returns every entry in archive order.
	Members() []domain.ArchiveMember

	// Extract materialises one member's raw bytes.
	// Returns domain.ErrNotFound for an unknown path and
	// domain.ErrExtract (wrapped) on extraction failure.
	// The extraction capability is not assumed reentrant; callers
	// serialise their own access.
	Extract(ctx context.Context, path string) ([]byte, error)

	// Close releases the handle and any background resources.
	Close() error
}
