package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_Fields(t *testing.T) {
	tests := []struct {
		name string
		flds string
		want []string
	}{
		{name: "two fields", flds: "front\x1fback", want: []string{"front", "back"}},
		{name: "single field", flds: "only", want: []string{"only"}},
		{name: "empty middle field", flds: "a\x1f\x1fc", want: []string{"a", "", "c"}},
		{name: "empty string", flds: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := Note{Flds: tt.flds}
			assert.Equal(t, tt.want, note.Fields())
		})
	}
}

func TestNote_Tags(t *testing.T) {
	note := Note{RawTags: " vocab  grammar "}
	assert.Equal(t, []string{"vocab", "grammar"}, note.Tags())

	assert.Empty(t, Note{}.Tags())
}

func TestCollection_Template(t *testing.T) {
	coll := sampleCollection()

	model, tmpl, ok := coll.Template(coll.Cards[1])
	require.True(t, ok)
	assert.Equal(t, "Basic", model.Name)
	assert.Equal(t, "{{Front}}", tmpl.Qfmt)

	// Unknown ordinal does not resolve.
	card := coll.Cards[1]
	card.Ord = 9
	_, _, ok = coll.Template(card)
	assert.False(t, ok)

	// Dangling note reference does not resolve.
	card = coll.Cards[1]
	card.NoteID = 999
	_, _, ok = coll.Template(card)
	assert.False(t, ok)
}

func TestCollection_Deck(t *testing.T) {
	coll := sampleCollection()

	deck, ok := coll.Deck(1)
	require.True(t, ok)
	assert.Equal(t, "Default", deck.Name)

	_, ok = coll.Deck(42)
	assert.False(t, ok)
	assert.Equal(t, "deck 42", DeckName(coll, 42))
	assert.Equal(t, "Default", DeckName(coll, 1))
}

func sampleCollection() *Collection {
	return &Collection{
		Cards: map[int64]Card{
			1: {ID: 1, NoteID: 10, DeckID: 1, Ord: 0},
		},
		Notes: map[int64]Note{
			10: {ID: 10, ModelID: 100, Flds: "front\x1fback"},
		},
		Meta: map[int64]CollectionMetadata{
			1: {
				ID: 1,
				Models: map[string]Model{
					"100": {
						ID:   100,
						Name: "Basic",
						Flds: []Field{{Name: "Front", Ord: 0}, {Name: "Back", Ord: 1}},
						Tmpls: []Template{
							{Name: "Card 1", Ord: 0, Qfmt: "{{Front}}", Afmt: "{{Back}}"},
						},
					},
				},
				Decks: map[string]Deck{
					"1": {ID: 1, Name: "Default"},
				},
			},
		},
		Revlog: map[int64]Rev{},
		Path:   "sample.anki2",
	}
}
