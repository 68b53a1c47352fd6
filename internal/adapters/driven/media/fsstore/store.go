// Package fsstore implements the ResourceStore driven port on the local
// filesystem. Each handle is a file:// URL pointing at an extracted copy
// inside a per-store directory; releasing a handle deletes the copy, the
// in-process analogue of revoking an object URL.
package fsstore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ResourceStore = (*Store)(nil)

// Store issues file:// resource handles backed by one temp directory.
type Store struct {
	mu      sync.Mutex
	dir     string
	handles map[string]string // handle -> file path
	closed  bool
}

// NewStore creates a resource store rooted under baseDir.
// An empty baseDir uses the system temp directory.
func NewStore(baseDir string) (*Store, error) {
	dir, err := os.MkdirTemp(baseDir, "mnemo-media-")
	if err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	return &Store{
		dir:     dir,
		handles: make(map[string]string),
	}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Put stores bytes under a display filename and returns a file:// handle.
// Names are namespaced by a fresh id so repeated or colliding display
// names never overwrite each other.
func (s *Store) Put(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", domain.ErrClosed
	}

	path := filepath.Join(s.dir, uuid.New().String()+"-"+filepath.Base(name))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing media file: %w", err)
	}

	handle := (&url.URL{Scheme: "file", Path: path}).String()
	s.handles[handle] = path
	return handle, nil
}

// Release revokes one handle, deleting its backing file.
// Unknown handles are a no-op.
func (s *Store) Release(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.handles[handle]
	if !ok {
		return nil
	}
	delete(s.handles, handle)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing media file: %w", err)
	}
	return nil
}

// Close revokes every handle and removes the store directory.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.handles = make(map[string]string)
	return os.RemoveAll(s.dir)
}
