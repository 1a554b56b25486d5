package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/views"
)

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the page routes served by the UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// building the table does not load any view or call the api
			table, err := views.NewSet(client.NewClient("http://localhost")).Table()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tNAME")
			for _, r := range table.Routes() {
				fmt.Fprintf(w, "%s\t%s\n", r.Pattern, r.Name)
			}
			fmt.Fprintf(w, "%s\t%s\n", table.NotFound().Pattern, table.NotFound().Name)
			return w.Flush()
		},
	}
}
