package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"basecat/internal/baseset"
	"basecat/internal/checksum"
	"basecat/internal/registry"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a set's details and per-file validation state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, _, err := ctx.loadCatalog(cmd.Context(), kindFlag, nil)
			if err != nil {
				return err
			}

			var set *baseset.Set
			for _, s := range cat.reg.Available() {
				if s.Name() == args[0] {
					set = s
					break
				}
			}
			if set == nil {
				return fmt.Errorf("no %s set named %q", kindFlag, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", set.Name())
			fmt.Fprintf(out, "Short name:  %s\n", baseset.FormatShortName(set.ShortName()))
			fmt.Fprintf(out, "Version:     %d\n", set.Version())
			fmt.Fprintf(out, "Description: %s\n", set.Description(cfg.Display.Language))
			if langs := set.DescriptionLanguages(); len(langs) > 0 {
				fmt.Fprintf(out, "Translations: %s\n", strings.Join(langs, ", "))
			}
			if set.Fallback() {
				fmt.Fprintln(out, "Fallback:    yes")
			}
			if used, ok := cat.reg.UsedSet(); ok && used == set {
				fmt.Fprintln(out, "Active:      yes")
			}
			if note := registry.CompletenessNote(set); note != "" {
				fmt.Fprintf(out, "Status:      %s\n", note)
			}

			rows := make([][]string, 0, set.NumFiles())
			for _, file := range set.Files() {
				path := file.Path
				if path == "" {
					path = "(intentionally empty)"
				}
				status := file.Check.String()
				if file.Check == checksum.NoFile && file.MissingWarning != "" {
					status = fmt.Sprintf("%s (%s)", status, file.MissingWarning)
				}
				rows = append(rows, []string{file.Slot, path, status})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Slot", "File", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "graphics", "Set kind to search")
	return cmd
}
