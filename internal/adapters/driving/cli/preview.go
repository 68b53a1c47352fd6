package cli

import (
	"github.com/spf13/cobra"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
	"github.com/mnemo-labs/mnemo-cli/internal/render"
)

var (
	previewFields map[string]string
	previewQfmt   string
	previewAfmt   string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a draft card without a collection",
	Long: `Renders an in-progress card composition from explicit field values
and templates, the same path a new-card editor uses before anything is
persisted.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringToStringVarP(&previewFields, "field", "f", nil, "field value as name=value (repeatable)")
	previewCmd.Flags().StringVar(&previewQfmt, "qfmt", "{{Front}}", "question template")
	previewCmd.Flags().StringVar(&previewAfmt, "afmt", "{{FrontSide}}<hr>{{Back}}", "answer template")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	face := domain.DraftFace(previewFields, domain.Template{Qfmt: previewQfmt, Afmt: previewAfmt}, "")
	rendered, err := render.Face(nil, face, nil)
	if err != nil {
		return err
	}
	cmd.Println("Question:")
	cmd.Println(rendered.Question)
	cmd.Println("Answer:")
	cmd.Println(rendered.Answer)
	return nil
}
