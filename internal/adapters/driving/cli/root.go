// Package cli implements the cobra command-line interface for mnemo.
package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/mnemo-labs/mnemo-cli/internal/adapters/driven/config/file"
	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driven/archive"
	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driven/media/fsstore"
	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driven/sqlengine/sqlite"
	"github.com/mnemo-labs/mnemo-cli/internal/core/ports/driven"
	"github.com/mnemo-labs/mnemo-cli/internal/core/services"
	"github.com/mnemo-labs/mnemo-cli/internal/logger"
)

var (
	verboseFlag bool
	configDir   string

	// configStore is loaded once in the persistent pre-run.
	configStore driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "mnemo",
	Short: "Browse card collections, SQLite databases and archives",
	Long: `mnemo decodes spaced-repetition card collections (.anki2/.apkg),
bare SQLite databases and generic archives (zip/7z/rar/tar) into a
queryable in-memory model, with on-demand media extraction.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		store, err := configfile.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		configStore = store
		logger.SetVerbose(verboseFlag || store.GetBool(configfile.KeyVerbose))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.mnemo)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// session bundles a collection service with the resource store backing
// its media handles; Close tears both down.
type session struct {
	*services.Collection
	resources *fsstore.Store
}

func (s *session) Close() error {
	s.Collection.Close()
	return s.resources.Close()
}

// newSession wires a fresh collection service with nothing loaded.
// The caller owns the returned session and must Close it.
func newSession() (*session, error) {
	mediaDir := ""
	if configStore != nil {
		mediaDir = configStore.GetString(configfile.KeyMediaDir)
	}
	resources, err := fsstore.NewStore(mediaDir)
	if err != nil {
		return nil, err
	}

	svc := services.NewCollection(sqlite.NewEngine(""), archive.NewOpener(), resources, nil)
	return &session{Collection: svc, resources: resources}, nil
}

// openCollection loads a document file into a freshly wired collection
// service. The caller owns the returned session and must Close it.
func openCollection(ctx context.Context, path string) (*session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	sess.SetPath(path)
	if err := sess.SetData(ctx, base64.StdEncoding.EncodeToString(data)); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}
