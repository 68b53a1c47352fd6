package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var mediaExportDir string

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Inspect and extract collection media",
}

var mediaLsCmd = &cobra.Command{
	Use:   "ls [file]",
	Short: "List the media names declared by a collection package",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaLs,
}

var mediaExportCmd = &cobra.Command{
	Use:   "export [file] [names...]",
	Short: "Extract media files to a directory",
	Long: `Resolves the given media names through the extraction queue and
copies the results into the output directory. With no names every
declared media file is exported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMediaExport,
}

func init() {
	mediaExportCmd.Flags().StringVarP(&mediaExportDir, "out", "o", ".", "output directory")
	mediaCmd.AddCommand(mediaLsCmd)
	mediaCmd.AddCommand(mediaExportCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaLs(cmd *cobra.Command, args []string) error {
	sess, err := openCollection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	names := sess.MediaNames()
	if len(names) == 0 {
		cmd.Println("No media declared.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runMediaExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openCollection(ctx, args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	names := args[1:]
	if len(names) == 0 {
		names = sess.MediaNames()
	}
	if len(names) == 0 {
		cmd.Println("No media to export.")
		return nil
	}
	if err := os.MkdirAll(mediaExportDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", mediaExportDir, err)
	}

	exported := 0
	for _, name := range names {
		handle, err := sess.ResolveMedia(ctx, name)
		if err != nil {
			cmd.PrintErrln("skipping", name+":", err)
			continue
		}
		if err := copyHandle(handle, filepath.Join(mediaExportDir, filepath.Base(name))); err != nil {
			cmd.PrintErrln("skipping", name+":", err)
			continue
		}
		exported++
	}
	cmd.Printf("exported %d of %d file(s) to %s\n", exported, len(names), mediaExportDir)
	return nil
}

// copyHandle copies a resolved file:// handle to dst.
func copyHandle(handle, dst string) error {
	src := handle
	if strings.HasPrefix(handle, "file://") {
		parsed, err := url.Parse(handle)
		if err != nil {
			return err
		}
		src = parsed.Path
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
