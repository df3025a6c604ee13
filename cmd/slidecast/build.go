package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecast/internal/domain/services"
)

func newBuildCmd() *cobra.Command {
	var (
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "build <outline>",
		Short: "Write the document and the HTML deck for an outline",
		Long: `Parse an outline and write both its document (YAML or JSON) and its
rendered HTML deck. Nothing is written unless both outputs could be
produced.

Example:
  slidecast build talk.md --out-dir dist`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			var ext string
			switch format {
			case "yaml":
				ext = ".yaml"
			case "json":
				ext = ".json"
			default:
				return fmt.Errorf("unknown document format %q (use yaml or json)", format)
			}

			a, err := newApp(cmd, source, "theme", "theme-dir", "transition", "inline-markdown")
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.deckService(nil)
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = filepath.Dir(source)
			}
			base := replaceExt(filepath.Base(source), "")

			result, err := svc.Build(cmd.Context(), services.BuildRequest{
				Source:       source,
				DocumentPath: filepath.Join(dir, base+ext),
				HTMLPath:     filepath.Join(dir, base+".html"),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Document: %s\n", result.DocumentPath)
			fmt.Fprintf(out, "Deck:     %s (%d slides, theme %s)\n",
				result.HTMLPath, result.Deck.Document.SlideCount(), result.Deck.Theme)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default: next to the outline)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Document format: yaml or json")
	addRenderFlags(cmd)

	return cmd
}
