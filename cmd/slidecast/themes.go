package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "", "theme-dir")
			if err != nil {
				return err
			}
			defer a.Close()

			themes, err := a.themes().List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")
			for _, info := range themes {
				source := info.Path
				if info.BuiltIn {
					source = "built-in"
				}
				marker := ""
				if info.Name == a.config.Theme.Name {
					marker = " *"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\n", info.Name, marker, source, info.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("theme-dir", "", "Directory holding custom themes (overrides config)")

	return cmd
}
