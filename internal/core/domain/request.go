package domain

import "strconv"

// CardsQuery is an ad hoc deck filter used to derive a card view.
// It is held by the consuming view, never by the snapshot.
type CardsQuery struct {
	DeckIDs []int64
}

// Matches reports whether a card belongs to the queried decks.
// An empty query matches everything.
func (q CardsQuery) Matches(card Card) bool {
	if len(q.DeckIDs) == 0 {
		return true
	}
	for _, id := range q.DeckIDs {
		if card.DeckID == id {
			return true
		}
	}
	return false
}

// CardFaceKind tags the two CardFace variants.
type CardFaceKind int

const (
	// FaceCommitted is a card already present in a snapshot.
	FaceCommitted CardFaceKind = iota

	// FaceDraft is an in-progress composition not yet persisted.
	FaceDraft
)

// CardFace answers "what note/card fields does this represent" for both a
// committed card and a draft composition, selected by Kind rather than
// subclassing.
type CardFace struct {
	Kind CardFaceKind

	// Committed variant: resolved against a snapshot.
	CardID int64

	// Draft variant: explicit values.
	Fields   map[string]string
	Template Template
	CSS      string
}

// CommittedFace wraps an existing card id.
func CommittedFace(cardID int64) CardFace {
	return CardFace{Kind: FaceCommitted, CardID: cardID}
}

// DraftFace wraps an in-progress composition.
func DraftFace(fields map[string]string, tmpl Template, css string) CardFace {
	return CardFace{Kind: FaceDraft, Fields: fields, Template: tmpl, CSS: css}
}

// Resolve produces the field map, template and CSS for rendering. For a
// committed face the snapshot supplies them; for a draft they are carried
// on the face itself. ok is false when a committed card does not resolve.
func (f CardFace) Resolve(c *Collection) (map[string]string, Template, string, bool) {
	if f.Kind == FaceDraft {
		return f.Fields, f.Template, f.CSS, true
	}
	if c == nil {
		return nil, Template{}, "", false
	}
	card, ok := c.Cards[f.CardID]
	if !ok {
		return nil, Template{}, "", false
	}
	note, ok := c.Notes[card.NoteID]
	if !ok {
		return nil, Template{}, "", false
	}
	model, tmpl, ok := c.Template(card)
	if !ok {
		return nil, Template{}, "", false
	}
	values := note.Fields()
	fields := make(map[string]string, len(model.Flds))
	for _, fld := range model.Flds {
		if fld.Ord >= 0 && fld.Ord < int64(len(values)) {
			fields[fld.Name] = values[fld.Ord]
		} else {
			fields[fld.Name] = ""
		}
	}
	return fields, tmpl, model.CSS, true
}

// CardsRequest asks the routing collaborator to open a filtered card view.
// Model is the originating collection surface, carried opaquely.
type CardsRequest struct {
	Model any
	Query CardsQuery
}

// NewCardRequest asks the routing collaborator to open a new-card
// composition view. Everything but Collection is optional.
type NewCardRequest struct {
	Collection any
	Card       *Card
	Note       *Note
	Template   *Template
}

// DeckName formats a deck id for display when the deck is undeclared.
func DeckName(c *Collection, id int64) string {
	if c != nil {
		if deck, ok := c.Deck(id); ok {
			return deck.Name
		}
	}
	return "deck " + strconv.FormatInt(id, 10)
}
