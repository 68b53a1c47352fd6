package archive

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
)

// Ensure Memory implements the interface.
var _ driven.Archive = (*Memory)(nil)

// Memory is an in-memory archive. Used by tests and by draft previews
// that carry media without a backing container file.
type Memory struct {
	mu      sync.RWMutex
	data    map[string][]byte
	members []domain.ArchiveMember
}

// NewMemory creates an in-memory archive with members listed in sorted
// path order.
func NewMemory(data map[string][]byte) *Memory {
	m := &Memory{data: make(map[string][]byte, len(data))}
	paths := make([]string, 0, len(data))
	for path, content := range data {
		m.data[path] = append([]byte(nil), content...)
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		m.members = append(m.members, domain.ArchiveMember{
			Path: path,
			Size: int64(len(m.data[path])),
		})
	}
	return m
}

func (m *Memory) Members() []domain.ArchiveMember {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.members
}

func (m *Memory) Extract(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[path]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", path, domain.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Close() error {
	return nil
}
