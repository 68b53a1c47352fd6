package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil collection service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCollectionService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Collection: &mockCollectionService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil collection service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingCollectionService)
	})

	t.Run("collection service is valid", func(t *testing.T) {
		ports := &Ports{
			Collection: &mockCollectionService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestHandleListDecks(t *testing.T) {
	t.Run("no collection loaded returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Collection: &mockCollectionService{}})
		require.NoError(t, err)

		_, _, err = server.handleListDecks(context.Background(), nil, struct{}{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("decks are counted and sorted by name", func(t *testing.T) {
		coll := &domain.Collection{
			Cards: map[int64]domain.Card{
				1: {ID: 1, DeckID: 10},
				2: {ID: 2, DeckID: 10},
				3: {ID: 3, DeckID: 20},
			},
			Meta: map[int64]domain.CollectionMetadata{
				1: {Decks: map[string]domain.Deck{
					"10": {ID: 10, Name: "Basics"},
					"20": {ID: 20, Name: "Advanced"},
				}},
			},
		}
		server, err := NewServer(&Ports{Collection: &mockCollectionService{coll: coll}})
		require.NoError(t, err)

		_, output, err := server.handleListDecks(context.Background(), nil, struct{}{})
		require.NoError(t, err)
		require.Equal(t, 2, output.Count)
		assert.Equal(t, "Advanced", output.Decks[0].Name)
		assert.Equal(t, 1, output.Decks[0].Cards)
		assert.Equal(t, "Basics", output.Decks[1].Name)
		assert.Equal(t, 2, output.Decks[1].Cards)
	})
}

func TestHandleListCards(t *testing.T) {
	coll := &domain.Collection{
		Cards: map[int64]domain.Card{
			1: {ID: 1, NoteID: 100, DeckID: 10},
			2: {ID: 2, NoteID: 100, DeckID: 20},
		},
		Notes: map[int64]domain.Note{
			100: {ID: 100, Flds: "front" + domain.FieldSeparator + "back", RawTags: " geo "},
		},
	}

	t.Run("deck filter applies", func(t *testing.T) {
		server, err := NewServer(&Ports{Collection: &mockCollectionService{coll: coll}})
		require.NoError(t, err)

		_, output, err := server.handleListCards(context.Background(), nil, ListCardsInput{DeckID: 20})
		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, int64(2), output.Cards[0].ID)
		assert.Equal(t, []string{"front", "back"}, output.Cards[0].Fields)
		assert.Equal(t, []string{"geo"}, output.Cards[0].Tags)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		server, err := NewServer(&Ports{Collection: &mockCollectionService{coll: coll}})
		require.NoError(t, err)

		_, output, err := server.handleListCards(context.Background(), nil, ListCardsInput{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
	})
}

func TestHandleQuery(t *testing.T) {
	t.Run("rows pass through with blobs as text", func(t *testing.T) {
		rows := []domain.Row{
			{Columns: []string{"id", "flds"}, Values: map[string]any{"id": int64(1), "flds": []byte("hello")}},
		}
		server, err := NewServer(&Ports{Collection: &mockCollectionService{rows: rows}})
		require.NoError(t, err)

		_, output, err := server.handleQuery(context.Background(), nil, QueryInput{SQL: "SELECT * from notes;"})
		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, []string{"id", "flds"}, output.Columns)
		assert.Equal(t, "hello", output.Rows[0]["flds"])
	})

	t.Run("query error propagates", func(t *testing.T) {
		server, err := NewServer(&Ports{Collection: &mockCollectionService{err: domain.ErrQuery}})
		require.NoError(t, err)

		_, _, err = server.handleQuery(context.Background(), nil, QueryInput{SQL: "nope"})
		assert.ErrorIs(t, err, domain.ErrQuery)
	})
}
