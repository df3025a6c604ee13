package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecast/internal/domain/services"
)

func newRenderCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "render <outline|document>",
		Short: "Render an outline or document to an HTML deck",
		Long: `Render an outline or a YAML/JSON document as a self-contained HTML deck.
The deck is written next to the source unless -o names another file.

Example:
  slidecast render talk.md
  slidecast render talk.yaml -o deck.html --theme dark --transition slide`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			a, err := newApp(cmd, source, "theme", "theme-dir", "transition", "inline-markdown")
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.deckService(nil)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = replaceExt(source, ".html")
			}

			result, err := svc.Build(cmd.Context(), services.BuildRequest{
				Source:   source,
				HTMLPath: outPath,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d slides with theme %s to %s\n",
				result.Deck.Document.SlideCount(), result.Deck.Theme, result.HTMLPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Deck file (default: source with .html)")
	addRenderFlags(cmd)

	return cmd
}

// addRenderFlags registers the flags that shape deck markup
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("theme", "t", "", "Theme to use (overrides config)")
	cmd.Flags().String("theme-dir", "", "Directory holding custom themes (overrides config)")
	cmd.Flags().String("transition", "", "Slide transition: none, fade or slide (overrides config)")
	cmd.Flags().Bool("inline-markdown", false, "Render inline markdown in text and bullets (overrides config)")
}
