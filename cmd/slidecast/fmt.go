package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecast/internal/adapters/secondary/output"
	"github.com/fredcamaral/slidecast/internal/domain/services"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <outline|document>",
		Short: "Print an outline or document in canonical outline form",
		Long: `Print the canonical outline text for an outline or a YAML/JSON document.
Parsing the output yields the same document. With -w an outline is
rewritten in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if write && services.IsDocumentPath(source) {
				return errors.New("-w only rewrites outlines; redirect the output to convert a document")
			}

			a, err := newApp(cmd, source)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.deckService(nil)
			if err != nil {
				return err
			}

			doc, err := svc.LoadDocument(cmd.Context(), source)
			if err != nil {
				return err
			}
			text := svc.FormatOutline(doc)

			if write {
				if err := output.WriteFile(source, []byte(text), 0o644); err != nil {
					return fmt.Errorf("rewriting outline: %w", err)
				}
				return nil
			}

			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the outline file in place")

	return cmd
}
