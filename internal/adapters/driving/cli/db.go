package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbExportOut string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Work with the decoded database",
}

var dbExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the decoded database as a bare SQLite file",
	Long: `Writes the currently loaded collection database back out as a
standalone SQLite file, checkpointed and ready to open elsewhere.`,
	Args: cobra.ExactArgs(1),
	RunE: runDBExport,
}

func init() {
	dbExportCmd.Flags().StringVarP(&dbExportOut, "out", "o", "collection.db", "output file")
	dbCmd.AddCommand(dbExportCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBExport(cmd *cobra.Command, args []string) error {
	sess, err := openCollection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	data, err := sess.Export(cmd.Context())
	if err != nil {
		return err
	}
	if err := os.WriteFile(dbExportOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dbExportOut, err)
	}
	cmd.Printf("wrote %s (%d bytes)\n", dbExportOut, len(data))
	return nil
}
