package driving

import (
	"context"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

// CollectionService is the surface a loaded document presents to views.
// It owns the single source of truth for "what collection is currently
// loaded" and notifies observers on every state transition.
type CollectionService interface {
	// SetPath updates the document path and notifies observers.
	// Setting the path alone never re-triggers a decode; SetData is the
	// sole decode trigger.
	SetPath(path string)

	// Path returns the current document path.
	Path() string

	// SetData replaces the loaded document with a base64 payload and runs
	// the full decode pipeline. On any failure the previously published
	// snapshot stays in place and the error is returned for logging.
	SetData(ctx context.Context, data string) error

	// Collection returns the last-computed snapshot, nil before the
	// first successful decode. Consumers must not mutate it.
	Collection() *domain.Collection

	// MediaURL returns a ready resource handle for a display filename,
	// or "" while enqueuing a background resolution. Callers re-invoke
	// after every notification to pick up newly available media.
	MediaURL(name string) string

	// MediaState reports the resolution lifecycle of a display filename.
	MediaState(name string) domain.MediaState

	// MediaNames returns the sorted display filenames declared by the
	// loaded package manifest.
	MediaNames() []string

	// ResolveMedia blocks until a display filename reaches a terminal
	// state and returns its resource handle.
	ResolveMedia(ctx context.Context, name string) (string, error)

	// Query runs an ad hoc SQL statement against the loaded database.
	Query(ctx context.Context, sqlText string) ([]domain.Row, error)

	// Export serialises the loaded database back to a bare SQLite file.
	Export(ctx context.Context) ([]byte, error)

	// Subscribe registers a state-changed observer and returns its
	// disposer.
	Subscribe(fn func()) (unsubscribe func())

	// RequestDecks forwards a filtered-view request to the router.
	RequestDecks(query domain.CardsQuery)

	// RequestNewCard forwards a composition-view request to the router.
	RequestNewCard(card *domain.Card, note *domain.Note, tmpl *domain.Template)

	// Close releases the database handle, the archive handle and every
	// issued media resource handle.
	Close() error
}
