package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/document"
)

func newParseCmd() *cobra.Command {
	var (
		outPath string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "parse <outline>",
		Short: "Parse an outline into a YAML or JSON document",
		Long: `Parse an outline into its structured document. Without -o the document
is printed as YAML (or JSON with --json). With -o the format follows the
file extension.

Example:
  slidecast parse talk.md
  slidecast parse talk.md -o talk.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.deckService(nil)
			if err != nil {
				return err
			}

			text, err := svc.LoadOutline(args[0])
			if err != nil {
				return err
			}
			doc := svc.ParseOutline(text)

			store, err := document.NewStore(a.logger)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := store.Save(cmd.Context(), outPath, doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d slides to %s\n", doc.SlideCount(), outPath)
				return nil
			}

			format := document.FormatYAML
			if asJSON {
				format = document.FormatJSON
			}
			return store.Encode(cmd.OutOrStdout(), doc, format)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the document to a .yaml, .yml or .json file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of YAML")

	return cmd
}
