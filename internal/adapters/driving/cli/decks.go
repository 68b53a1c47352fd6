package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

var decksJSON bool

var decksCmd = &cobra.Command{
	Use:   "decks [file]",
	Short: "List the decks of a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecks,
}

func init() {
	decksCmd.Flags().BoolVar(&decksJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(decksCmd)
}

type deckLine struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Cards int    `json:"cards"`
}

func deckLines(coll *domain.Collection) []deckLine {
	if coll == nil {
		return nil
	}
	counts := make(map[int64]int)
	for _, card := range coll.Cards {
		counts[card.DeckID]++
	}

	seen := make(map[int64]bool)
	var lines []deckLine
	for _, meta := range coll.Meta {
		for key, deck := range meta.Decks {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil || seen[id] {
				continue
			}
			name := deck.Name
			if name == "" {
				name = domain.DeckName(coll, id)
			}
			lines = append(lines, deckLine{ID: id, Name: name, Cards: counts[id]})
			seen[id] = true
		}
	}
	// Decks referenced by cards but absent from the metadata still show up.
	for id, n := range counts {
		if !seen[id] {
			lines = append(lines, deckLine{ID: id, Name: domain.DeckName(coll, id), Cards: n})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	return lines
}

func runDecks(cmd *cobra.Command, args []string) error {
	sess, err := openCollection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	lines := deckLines(sess.Collection.Collection())

	if decksJSON {
		data, err := json.MarshalIndent(lines, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal decks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(lines) == 0 {
		cmd.Println("No decks found.")
		return nil
	}
	for _, line := range lines {
		cmd.Printf("  [%d] %s (%d cards)\n", line.ID, line.Name, line.Cards)
	}
	return nil
}
