package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"basecat/internal/baseset"
	"basecat/internal/registry"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var allFlag bool
	var plainFlag bool
	var cachedFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered base sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			kinds := cfg.KindNames()
			if kindFlag != "" {
				kinds = []string{kindFlag}
			}

			if cachedFlag {
				return listCached(cmd, ctx, kinds)
			}

			for _, name := range kinds {
				cat, _, err := ctx.loadCatalog(cmd.Context(), name, nil)
				if err != nil {
					return err
				}

				if plainFlag || !stdoutIsTerminal() {
					fmt.Fprint(cmd.OutOrStdout(), cat.reg.SetsList())
					continue
				}

				used, hasUsed := cat.reg.UsedSet()
				var rows [][]string
				for _, s := range cat.reg.Available() {
					visible := (hasUsed && s == used) || s.NumMissing() == 0
					if !visible && !allFlag {
						continue
					}
					active := ""
					if hasUsed && s == used {
						active = "*"
					}
					note := registry.CompletenessNote(s)
					if note == "" {
						note = "ok"
					}
					rows = append(rows, []string{
						active,
						s.Name(),
						strconv.Itoa(s.Version()),
						s.Description(cfg.Display.Language),
						note,
					})
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s sets:\n", name)
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"", "Name", "Version", "Description", "Status"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "List only this set kind")
	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Include sets with missing files")
	cmd.Flags().BoolVar(&plainFlag, "plain", false, "Plain text output")
	cmd.Flags().BoolVar(&cachedFlag, "cached", false, "Show the last scan's results without rescanning")
	return cmd
}

// listCached prints the persisted snapshot from the most recent scan of
// each kind, without touching the search directories.
func listCached(cmd *cobra.Command, ctx *commandContext, kinds []string) error {
	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, name := range kinds {
		sets, err := store.LatestSets(cmd.Context(), name)
		if err != nil {
			return err
		}
		if len(sets) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no recorded sets (run scan first)\n", name)
			continue
		}

		rows := make([][]string, 0, len(sets))
		for _, set := range sets {
			rows = append(rows, []string{
				set.Name,
				baseset.FormatShortName(set.ShortName),
				strconv.Itoa(set.Version),
				fmt.Sprintf("%d/%d", set.ValidFiles, set.TotalFiles),
				set.PrimaryFile,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s sets (last scan):\n", name)
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Name", "ID", "Version", "Valid", "Primary file"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
	}
	return nil
}
