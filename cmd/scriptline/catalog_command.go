package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the alternatives catalog",
	}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the alternative takes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, key := range ctx.catalog.Keys() {
				alt := ctx.catalog[key]
				rows = append(rows, []string{key, alt.Name, alt.Src, alt.Duration.String()})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable(out, []string{"Key", "Name", "Source", "Duration"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "suggest <key>",
		Short: "Find the catalog key closest to a possibly misspelled one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := ctx.catalog[key]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is in the catalog\n", key)
				return nil
			}
			suggestion, ok := ctx.catalog.Suggest(key)
			if !ok {
				return fmt.Errorf("no catalog key resembles %q", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: did you mean %s?\n", key, suggestion)
			return nil
		},
	})

	return catalogCmd
}
