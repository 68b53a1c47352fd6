package services

import (
	"encoding/json"
	"fmt"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/logger"
)

// The four fixed projection statements. Collections are small; every table
// is loaded whole into a keyed map, no paging.
const (
	qCards    = `SELECT * from cards;`
	qCollMeta = `SELECT * from col;`
	qNotes    = `SELECT * from notes;`
	qRevs     = `SELECT * from revlog;`
)

// projectCards folds card rows into a map keyed by id. Rows without a
// usable id column are logged and skipped rather than propagated untyped.
func projectCards(rows []domain.Row) map[int64]domain.Card {
	cards := make(map[int64]domain.Card, len(rows))
	for _, row := range rows {
		id, ok := row.Int64("id")
		if !ok {
			logger.Warn("cards row without id column, skipping")
			continue
		}
		card := domain.Card{ID: id, Data: row.String("data")}
		card.NoteID, _ = row.Int64("nid")
		card.DeckID, _ = row.Int64("did")
		card.Ord, _ = row.Int64("ord")
		card.Mod, _ = row.Int64("mod")
		card.USN, _ = row.Int64("usn")
		card.Type, _ = row.Int64("type")
		card.Queue, _ = row.Int64("queue")
		card.Due, _ = row.Int64("due")
		card.Ivl, _ = row.Int64("ivl")
		card.Factor, _ = row.Int64("factor")
		card.Reps, _ = row.Int64("reps")
		card.Lapses, _ = row.Int64("lapses")
		card.Left, _ = row.Int64("left")
		card.ODue, _ = row.Int64("odue")
		card.ODeck, _ = row.Int64("odid")
		card.Flags, _ = row.Int64("flags")
		cards[id] = card
	}
	return cards
}

// projectNotes folds note rows into a map keyed by id.
func projectNotes(rows []domain.Row) map[int64]domain.Note {
	notes := make(map[int64]domain.Note, len(rows))
	for _, row := range rows {
		id, ok := row.Int64("id")
		if !ok {
			logger.Warn("notes row without id column, skipping")
			continue
		}
		note := domain.Note{
			ID:      id,
			GUID:    row.String("guid"),
			RawTags: row.String("tags"),
			Flds:    row.String("flds"),
			SortFld: row.String("sfld"),
			Data:    row.String("data"),
		}
		note.ModelID, _ = row.Int64("mid")
		note.Mod, _ = row.Int64("mod")
		note.USN, _ = row.Int64("usn")
		note.Csum, _ = row.Int64("csum")
		note.Flags, _ = row.Int64("flags")
		notes[id] = note
	}
	return notes
}

// projectRevs folds revision-log rows into a map keyed by id.
func projectRevs(rows []domain.Row) map[int64]domain.Rev {
	revs := make(map[int64]domain.Rev, len(rows))
	for _, row := range rows {
		id, ok := row.Int64("id")
		if !ok {
			logger.Warn("revlog row without id column, skipping")
			continue
		}
		rev := domain.Rev{ID: id}
		rev.CardID, _ = row.Int64("cid")
		rev.USN, _ = row.Int64("usn")
		rev.Ease, _ = row.Int64("ease")
		rev.Ivl, _ = row.Int64("ivl")
		rev.LastIvl, _ = row.Int64("lastIvl")
		rev.Factor, _ = row.Int64("factor")
		rev.Time, _ = row.Int64("time")
		rev.Type, _ = row.Int64("type")
		revs[id] = rev
	}
	return revs
}

// projectMeta folds col rows into a map keyed by id, decoding the JSON
// columns into nested structures. An empty stored value decodes to nil;
// malformed JSON aborts the projection.
func projectMeta(rows []domain.Row) (map[int64]domain.CollectionMetadata, error) {
	metas := make(map[int64]domain.CollectionMetadata, len(rows))
	for _, row := range rows {
		id, ok := row.Int64("id")
		if !ok {
			logger.Warn("col row without id column, skipping")
			continue
		}
		meta := domain.CollectionMetadata{ID: id}
		meta.Crt, _ = row.Int64("crt")
		meta.Mod, _ = row.Int64("mod")
		meta.Scm, _ = row.Int64("scm")
		meta.Ver, _ = row.Int64("ver")
		meta.Dty, _ = row.Int64("dty")
		meta.USN, _ = row.Int64("usn")
		meta.Ls, _ = row.Int64("ls")

		for _, column := range domain.JSONFields["col"] {
			text := row.String(column)
			if text == "" {
				continue
			}
			var err error
			switch column {
			case "models":
				err = json.Unmarshal([]byte(text), &meta.Models)
			case "decks":
				err = json.Unmarshal([]byte(text), &meta.Decks)
			case "conf":
				err = json.Unmarshal([]byte(text), &meta.Conf)
			case "dconf":
				err = json.Unmarshal([]byte(text), &meta.DConf)
			case "tags":
				err = json.Unmarshal([]byte(text), &meta.Tags)
			}
			if err != nil {
				return nil, fmt.Errorf("col %d column %s: %v: %w", id, column, err, domain.ErrDecode)
			}
		}
		metas[id] = meta
	}
	return metas, nil
}
