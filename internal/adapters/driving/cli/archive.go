package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driven/archive"
)

var archiveLsJSON bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archive containers",
}

var archiveLsCmd = &cobra.Command{
	Use:   "ls [file]",
	Short: "List the members of an archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveLs,
}

var archiveCatCmd = &cobra.Command{
	Use:   "cat [file] [member]",
	Short: "Write one archive member to stdout",
	Args:  cobra.ExactArgs(2),
	RunE:  runArchiveCat,
}

func init() {
	archiveLsCmd.Flags().BoolVar(&archiveLsJSON, "json", false, "output as JSON")
	archiveCmd.AddCommand(archiveLsCmd)
	archiveCmd.AddCommand(archiveCatCmd)
	rootCmd.AddCommand(archiveCmd)
}

func runArchiveLs(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	arc, err := archive.NewOpener().Open(cmd.Context(), data, args[0])
	if err != nil {
		return err
	}
	defer arc.Close()

	members := arc.Members()

	if archiveLsJSON {
		out, err := json.MarshalIndent(members, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal members: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	for _, member := range members {
		cmd.Printf("%10d  %s\n", member.Size, member.Path)
	}
	cmd.Printf("%d member(s)\n", len(members))
	return nil
}

func runArchiveCat(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	arc, err := archive.NewOpener().Open(cmd.Context(), data, args[0])
	if err != nil {
		return err
	}
	defer arc.Close()

	contents, err := arc.Extract(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(contents)
	return err
}
