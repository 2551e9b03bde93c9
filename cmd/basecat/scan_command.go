package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"basecat/internal/baseset"
	"basecat/internal/catalogdb"
	"basecat/internal/logging"
	"basecat/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "scan [dir...]",
		Short: "Discover and validate base sets in the search directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			kinds := cfg.KindNames()
			if kindFlag != "" {
				kinds = []string{kindFlag}
			}

			release, err := scanner.Lock(cmd.Context(), cfg.LockPath())
			if err != nil {
				return err
			}
			defer release()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rows := make([][]string, 0, len(kinds))
			for _, name := range kinds {
				cat, summary, err := ctx.loadCatalog(cmd.Context(), name, args)
				if err != nil {
					return err
				}

				if err := store.RecordScan(cmd.Context(), scanRecord(summary), setRecords(cat.reg.Available())); err != nil {
					// The in-memory result stands even when history can't
					// be written.
					logger.Warn("recording scan failed", logging.Error(err))
				}

				active := "-"
				if used, ok := cat.reg.UsedSet(); ok {
					active = used.Name()
				}
				rows = append(rows, []string{
					name,
					strconv.Itoa(summary.Candidates),
					strconv.Itoa(summary.Added),
					strconv.Itoa(summary.Rejected),
					strconv.Itoa(cat.reg.Count()),
					active,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Kind", "Candidates", "Added", "Rejected", "Usable", "Active"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Scan only this set kind")
	return cmd
}

func scanRecord(summary scanner.Summary) catalogdb.Scan {
	return catalogdb.Scan{
		ID:         summary.ScanID,
		Kind:       summary.Kind,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Candidates: summary.Candidates,
		Added:      summary.Added,
		Rejected:   summary.Rejected,
	}
}

func setRecords(sets []*baseset.Set) []catalogdb.SetRecord {
	records := make([]catalogdb.SetRecord, 0, len(sets))
	for _, s := range sets {
		records = append(records, catalogdb.SetRecord{
			Name:        s.Name(),
			ShortName:   s.ShortName(),
			Version:     s.Version(),
			ValidFiles:  s.NumValid(),
			FoundFiles:  s.NumFound(),
			TotalFiles:  s.NumFiles(),
			PrimaryFile: s.PrimaryFile(),
		})
	}
	return records
}
