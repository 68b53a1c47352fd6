package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

// OpenInput is the input schema for the open_collection tool.
type OpenInput struct {
	Path string `json:"path" jsonschema:"filesystem path of the collection file to load"`
}

// OpenOutput is the output schema for the open_collection tool.
type OpenOutput struct {
	Path  string `json:"path"`
	Cards int    `json:"cards"`
	Notes int    `json:"notes"`
	Media int    `json:"media"`
}

// ListDecksOutput is the output schema for the list_decks tool.
type ListDecksOutput struct {
	Decks []DeckOutput `json:"decks"`
	Count int          `json:"count"`
}

// DeckOutput represents a single deck.
type DeckOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Cards int    `json:"cards"`
}

// ListCardsInput is the input schema for the list_cards tool.
type ListCardsInput struct {
	DeckID int64 `json:"deck_id,omitempty" jsonschema:"only return cards of this deck (0 = all decks)"`
	Limit  int   `json:"limit,omitempty" jsonschema:"maximum number of cards to return (default 50)"`
}

// ListCardsOutput is the output schema for the list_cards tool.
type ListCardsOutput struct {
	Cards []CardOutput `json:"cards"`
	Count int          `json:"count"`
}

// CardOutput represents a single card with its note content.
type CardOutput struct {
	ID     int64    `json:"id"`
	NoteID int64    `json:"note_id"`
	Deck   string   `json:"deck"`
	Fields []string `json:"fields"`
	Tags   []string `json:"tags,omitempty"`
}

// QueryInput is the input schema for the query_sql tool.
type QueryInput struct {
	SQL string `json:"sql" jsonschema:"the SQL statement to run against the loaded database"`
}

// QueryOutput is the output schema for the query_sql tool.
type QueryOutput struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Count   int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_collection",
		Description: "Load a card collection file (.anki2/.apkg/bare SQLite) into the session",
	}, s.handleOpen)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_decks",
		Description: "List the decks of the loaded collection with card counts",
	}, s.handleListDecks)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_cards",
		Description: "List cards of the loaded collection, optionally filtered by deck",
	}, s.handleListCards)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_sql",
		Description: "Run an arbitrary SQL statement against the loaded collection database",
	}, s.handleQuery)
}

// handleOpen handles the open_collection tool invocation.
func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, OpenOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, OpenOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	s.ports.Collection.SetPath(input.Path)
	if err := s.ports.Collection.SetData(ctx, base64.StdEncoding.EncodeToString(data)); err != nil {
		return nil, OpenOutput{}, err
	}

	coll := s.ports.Collection.Collection()
	return nil, OpenOutput{
		Path:  input.Path,
		Cards: len(coll.Cards),
		Notes: len(coll.Notes),
		Media: len(s.ports.Collection.MediaNames()),
	}, nil
}

// handleListDecks handles the list_decks tool invocation.
func (s *Server) handleListDecks(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListDecksOutput, error) {
	coll := s.ports.Collection.Collection()
	if coll == nil {
		return nil, ListDecksOutput{}, fmt.Errorf("no collection loaded: %w", domain.ErrNotFound)
	}

	counts := make(map[int64]int)
	for _, card := range coll.Cards {
		counts[card.DeckID]++
	}

	output := ListDecksOutput{Decks: make([]DeckOutput, 0, len(counts))}
	for id, n := range counts {
		output.Decks = append(output.Decks, DeckOutput{
			ID:    id,
			Name:  domain.DeckName(coll, id),
			Cards: n,
		})
	}
	sort.Slice(output.Decks, func(i, j int) bool { return output.Decks[i].Name < output.Decks[j].Name })
	output.Count = len(output.Decks)
	return nil, output, nil
}

// handleListCards handles the list_cards tool invocation.
func (s *Server) handleListCards(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListCardsInput,
) (*mcp.CallToolResult, ListCardsOutput, error) {
	coll := s.ports.Collection.Collection()
	if coll == nil {
		return nil, ListCardsOutput{}, fmt.Errorf("no collection loaded: %w", domain.ErrNotFound)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	var query domain.CardsQuery
	if input.DeckID != 0 {
		query.DeckIDs = []int64{input.DeckID}
	}

	ids := make([]int64, 0, len(coll.Cards))
	for id, card := range coll.Cards {
		if query.Matches(card) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	output := ListCardsOutput{}
	for _, id := range ids {
		if len(output.Cards) >= limit {
			break
		}
		card := coll.Cards[id]
		out := CardOutput{
			ID:     card.ID,
			NoteID: card.NoteID,
			Deck:   domain.DeckName(coll, card.DeckID),
		}
		if note, ok := coll.Notes[card.NoteID]; ok {
			out.Fields = note.Fields()
			out.Tags = note.Tags()
		}
		output.Cards = append(output.Cards, out)
	}
	output.Count = len(output.Cards)
	return nil, output, nil
}

// handleQuery handles the query_sql tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	rows, err := s.ports.Collection.Query(ctx, input.SQL)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{Rows: make([]map[string]any, 0, len(rows)), Count: len(rows)}
	if len(rows) > 0 {
		output.Columns = rows[0].Columns
	}
	for _, row := range rows {
		values := make(map[string]any, len(row.Values))
		for col, v := range row.Values {
			if b, ok := v.([]byte); ok {
				values[col] = string(b)
				continue
			}
			values[col] = v
		}
		output.Rows = append(output.Rows, values)
	}
	return nil, output, nil
}
