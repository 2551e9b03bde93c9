package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			scans, err := store.RecentScans(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			if len(scans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scans recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(scans))
			for _, scan := range scans {
				rows = append(rows, []string{
					scan.StartedAt.Local().Format(time.DateTime),
					scan.Kind,
					strconv.Itoa(scan.Candidates),
					strconv.Itoa(scan.Added),
					strconv.Itoa(scan.Rejected),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Started", "Kind", "Candidates", "Added", "Rejected"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Number of scans to show")
	return cmd
}
