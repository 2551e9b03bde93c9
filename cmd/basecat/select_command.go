package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var autoFlag bool

	cmd := &cobra.Command{
		Use:   "select [name]",
		Short: "Choose the active set for a kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" && !autoFlag {
				return errors.New("a set name or --auto is required")
			}
			if name != "" && autoFlag {
				return errors.New("--auto conflicts with an explicit set name")
			}

			cat, _, err := ctx.loadCatalog(cmd.Context(), kindFlag, nil)
			if err != nil {
				return err
			}

			if !cat.reg.Select(name) {
				if name == "" {
					return fmt.Errorf("no usable %s set available", kindFlag)
				}
				return fmt.Errorf("no %s set named %q", kindFlag, name)
			}

			used, _ := cat.reg.UsedSet()
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SetSelection(cmd.Context(), kindFlag, used.Name()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s set: %s (version %d)\n",
				kindFlag, used.Name(), used.Version())
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "graphics", "Set kind to select for")
	cmd.Flags().BoolVar(&autoFlag, "auto", false, "Pick the best available set automatically")
	return cmd
}
