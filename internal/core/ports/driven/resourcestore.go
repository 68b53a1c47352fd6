package driven

// ResourceStore turns extracted media bytes into locally resolvable
// resource handles a renderer can display without re-reading raw bytes.
// Handles live until released; Close revokes everything at once when the
// owning document is replaced or disposed.
type ResourceStore interface {
	// Put stores bytes under a display filename and returns the handle.
	Put(name string, data []byte) (string, error)

	// Release revokes a single handle. Unknown handles are a no-op.
	Release(handle string) error

	// Close revokes every handle issued by this store.
	Close() error
}
