package mcp

import (
	"context"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

// mockCollectionService is a mock implementation of driving.CollectionService.
type mockCollectionService struct {
	path     string
	setData  string
	coll     *domain.Collection
	rows     []domain.Row
	media    []string
	exported []byte
	err      error
}

func (m *mockCollectionService) SetPath(path string) { m.path = path }

func (m *mockCollectionService) Path() string { return m.path }

func (m *mockCollectionService) SetData(_ context.Context, data string) error {
	m.setData = data
	return m.err
}

func (m *mockCollectionService) Collection() *domain.Collection { return m.coll }

func (m *mockCollectionService) MediaURL(_ string) string { return "" }

func (m *mockCollectionService) MediaState(_ string) domain.MediaState {
	return domain.MediaUnrequested
}

func (m *mockCollectionService) MediaNames() []string { return m.media }

func (m *mockCollectionService) ResolveMedia(_ context.Context, _ string) (string, error) {
	return "", m.err
}

func (m *mockCollectionService) Query(_ context.Context, _ string) ([]domain.Row, error) {
	return m.rows, m.err
}

func (m *mockCollectionService) Export(_ context.Context) ([]byte, error) {
	return m.exported, m.err
}

func (m *mockCollectionService) Subscribe(_ func()) func() { return func() {} }

func (m *mockCollectionService) RequestDecks(_ domain.CardsQuery) {}

func (m *mockCollectionService) RequestNewCard(_ *domain.Card, _ *domain.Note, _ *domain.Template) {
}

func (m *mockCollectionService) Close() error { return nil }
