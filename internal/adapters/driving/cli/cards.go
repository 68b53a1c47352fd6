package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/logger"
)

var (
	cardsDecks []int64
	cardsJSON  bool
	cardsWatch bool
)

var cardsCmd = &cobra.Command{
	Use:   "cards [file]",
	Short: "List the cards of a collection",
	Long: `Decodes a collection file and lists its cards with their deck,
note fields and template ordinal. With --watch the file is re-decoded
and re-listed whenever it changes on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runCards,
}

func init() {
	cardsCmd.Flags().Int64SliceVar(&cardsDecks, "deck", nil, "only cards of these deck ids")
	cardsCmd.Flags().BoolVar(&cardsJSON, "json", false, "output as JSON")
	cardsCmd.Flags().BoolVarP(&cardsWatch, "watch", "w", false, "re-list when the file changes")
	rootCmd.AddCommand(cardsCmd)
}

func runCards(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	sess, err := openCollection(ctx, path)
	if err != nil {
		return err
	}
	defer sess.Close()

	query := domain.CardsQuery{DeckIDs: cardsDecks}
	if err := outputCards(cmd, sess.Collection.Collection(), query); err != nil {
		return err
	}

	if !cardsWatch {
		return nil
	}
	return watchAndRelist(ctx, cmd, sess, path, query)
}

// watchAndRelist re-feeds the file into the model on every write, the
// way the notebook host re-feeds changed document content.
func watchAndRelist(ctx context.Context, cmd *cobra.Command, sess *session, path string, query domain.CardsQuery) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cmd.Println("watching for changes, interrupt to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("re-reading %s: %v", path, err)
				continue
			}
			if err := sess.SetData(ctx, base64.StdEncoding.EncodeToString(data)); err != nil {
				// Last good snapshot stays; report and keep watching.
				cmd.PrintErrln("decode failed:", err)
				continue
			}
			if err := outputCards(cmd, sess.Collection.Collection(), query); err != nil {
				return err
			}
		}
	}
}

type cardLine struct {
	ID     int64    `json:"id"`
	NoteID int64    `json:"nid"`
	Deck   string   `json:"deck"`
	Ord    int64    `json:"ord"`
	Fields []string `json:"fields"`
	Tags   []string `json:"tags,omitempty"`
}

func cardLines(coll *domain.Collection, query domain.CardsQuery) []cardLine {
	if coll == nil {
		return nil
	}
	lines := make([]cardLine, 0, len(coll.Cards))
	for _, card := range coll.Cards {
		if !query.Matches(card) {
			continue
		}
		line := cardLine{
			ID:     card.ID,
			NoteID: card.NoteID,
			Deck:   domain.DeckName(coll, card.DeckID),
			Ord:    card.Ord,
		}
		if note, ok := coll.Notes[card.NoteID]; ok {
			line.Fields = note.Fields()
			line.Tags = note.Tags()
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

func outputCards(cmd *cobra.Command, coll *domain.Collection, query domain.CardsQuery) error {
	lines := cardLines(coll, query)

	if cardsJSON {
		data, err := json.MarshalIndent(lines, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal cards: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(lines) == 0 {
		cmd.Println("No cards found.")
		return nil
	}
	for _, line := range lines {
		cmd.Printf("  [%d] %s: %s\n", line.ID, line.Deck, strings.Join(line.Fields, " | "))
	}
	cmd.Printf("%d card(s)\n", len(lines))
	return nil
}
