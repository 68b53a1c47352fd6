package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/render"
)

var (
	renderOut     string
	renderResolve bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file] [card-id]",
	Short: "Render a card to HTML",
	Long: `Renders the question and answer faces of one card through its
model template. With --resolve-media every referenced media file is
extracted first so the generated HTML points at local files.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write HTML to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderResolve, "resolve-media", false, "block until referenced media is extracted")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openCollection(ctx, args[0])
	if err != nil {
		return err
	}
	defer sess.Close()

	cardID, err := parseID(args[1])
	if err != nil {
		return err
	}

	resolver := sess.MediaURL
	if renderResolve {
		resolver = func(name string) string {
			handle, err := sess.ResolveMedia(ctx, name)
			if err != nil {
				return ""
			}
			return handle
		}
	}

	rendered, err := render.Face(sess.Collection.Collection(), domain.CommittedFace(cardID), resolver)
	if err != nil {
		return err
	}

	html := fmt.Sprintf("<style>%s</style>\n<section class=\"question\">%s</section>\n<hr>\n<section class=\"answer\">%s</section>\n",
		rendered.CSS, rendered.Question, rendered.Answer)

	if renderOut != "" {
		if err := os.WriteFile(renderOut, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", renderOut, err)
		}
		cmd.Println("wrote", renderOut)
		return nil
	}
	cmd.Print(html)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid card id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}
