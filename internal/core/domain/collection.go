package domain

import (
	"strconv"
	"strings"
)

// FieldSeparator joins note field values inside the flds column.
// It is the ASCII unit separator control character.
const FieldSeparator = "\x1f"

// JSONFields lists, per table, the columns stored as serialised JSON text
// that must be decoded into nested structures during projection.
var JSONFields = map[string][]string{
	"col": {"conf", "models", "decks", "dconf", "tags"},
}

// Collection is one decoded snapshot of a loaded document.
// A published snapshot is immutable; every change produces a new value.
type Collection struct {
	Cards  map[int64]Card
	Notes  map[int64]Note
	Meta   map[int64]CollectionMetadata
	Revlog map[int64]Rev

	// Path is the contents path the snapshot was decoded from.
	Path string
}

// Card is one schedulable review unit. The scheduling columns are carried
// through opaquely; mnemo never interprets them.
type Card struct {
	ID     int64
	NoteID int64
	DeckID int64
	Ord    int64

	Mod    int64
	USN    int64
	Type   int64
	Queue  int64
	Due    int64
	Ivl    int64
	Factor int64
	Reps   int64
	Lapses int64
	Left   int64
	ODue   int64
	ODeck  int64
	Flags  int64
	Data   string
}

// Note is one content unit referencing a model by id.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Mod     int64
	USN     int64
	RawTags string
	Flds    string
	SortFld string
	Csum    int64
	Flags   int64
	Data    string
}

// Fields splits the delimiter-joined field string into ordered values.
func (n Note) Fields() []string {
	if n.Flds == "" {
		return nil
	}
	return strings.Split(n.Flds, FieldSeparator)
}

// Tags splits the space-separated tag string, dropping empties.
func (n Note) Tags() []string {
	return strings.Fields(n.RawTags)
}

// CollectionMetadata is the per-collection singleton configuration row.
// The JSON columns are decoded before storage; an empty stored value
// decodes to a nil map rather than an error.
type CollectionMetadata struct {
	ID  int64
	Crt int64
	Mod int64
	Scm int64
	Ver int64
	Dty int64
	USN int64
	Ls  int64

	Conf   map[string]any
	Models map[string]Model
	Decks  map[string]Deck
	DConf  map[string]any
	Tags   map[string]any
}

// Model is a field/template schema shared by many notes.
type Model struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Flds  []Field    `json:"flds"`
	Tmpls []Template `json:"tmpls"`
	CSS   string     `json:"css"`
}

// Field is one ordered field definition of a model.
type Field struct {
	Name string `json:"name"`
	Ord  int64  `json:"ord"`
}

// Template is one ordered rendering template of a model.
type Template struct {
	Name string `json:"name"`
	Ord  int64  `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
}

// Deck is a named grouping of cards.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Rev is one revision-log row referencing a card.
type Rev struct {
	ID      int64
	CardID  int64
	USN     int64
	Ease    int64
	Ivl     int64
	LastIvl int64
	Factor  int64
	Time    int64
	Type    int64
}

// Template returns the model and template selected by a card's ordinal,
// resolved against this snapshot. ok is false when the note, model or
// ordinal does not resolve; rendering code tolerates the gap.
func (c *Collection) Template(card Card) (Model, Template, bool) {
	note, ok := c.Notes[card.NoteID]
	if !ok {
		return Model{}, Template{}, false
	}
	for _, meta := range c.Meta {
		model, ok := meta.Models[strconv.FormatInt(note.ModelID, 10)]
		if !ok {
			continue
		}
		for _, tmpl := range model.Tmpls {
			if tmpl.Ord == card.Ord {
				return model, tmpl, true
			}
		}
	}
	return Model{}, Template{}, false
}

// Deck resolves a card's deck id against the metadata. Missing decks are
// tolerated: ok is false and the caller picks a placeholder.
func (c *Collection) Deck(id int64) (Deck, bool) {
	for _, meta := range c.Meta {
		if deck, ok := meta.Decks[strconv.FormatInt(id, 10)]; ok {
			return deck, true
		}
	}
	return Deck{}, false
}
