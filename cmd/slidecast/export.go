package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <outline|document> -o handout.pdf",
		Short: "Export a printable PDF handout",
		Long: `Write a PDF handout with one page per slide: title, text, bullets, code
and image references.

Example:
  slidecast export talk.md -o handout.pdf`,
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

			doc, err := svc.ExportHandout(cmd.Context(), args[0], outPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d slides to %s\n", doc.SlideCount(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "PDF file to write")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
