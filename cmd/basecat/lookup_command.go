package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"basecat/internal/baseset"
	"basecat/internal/registry"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var md5Flag string

	cmd := &cobra.Command{
		Use:   "lookup <id>",
		Short: "Find an installed set by content identity",
		Long: `Find an installed set by its packed identity code, as used by content
catalogs. The id is either the four-character short code (e.g. OGFX) or a
numeric value (decimal, or hex with an 0x prefix). With --md5 the folded
checksum of the set's files must match as well. Displaced duplicates are
searched too, so a set that lost a duplicate contest still counts as
installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContentID(args[0])
			if err != nil {
				return err
			}

			ci := registry.ContentInfo{ID: id}
			if md5Flag != "" {
				sum, err := hex.DecodeString(strings.TrimSpace(md5Flag))
				if err != nil {
					return fmt.Errorf("--md5: %w", err)
				}
				ci.Checksum = sum
			}

			cat, _, err := ctx.loadCatalog(cmd.Context(), kindFlag, nil)
			if err != nil {
				return err
			}

			path, ok := cat.reg.FindSetFile(ci)
			if !ok {
				return fmt.Errorf("no installed %s set matches %s", kindFlag, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "graphics", "Set kind to search")
	cmd.Flags().StringVar(&md5Flag, "md5", "", "Require this folded checksum (hex)")
	return cmd
}

// parseContentID accepts a four-character short code or a numeric identity.
func parseContentID(arg string) (uint32, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, errors.New("content id is required")
	}
	if n, err := strconv.ParseUint(arg, 0, 32); err == nil {
		return uint32(n), nil
	}
	if len(arg) <= 4 {
		return baseset.PackShortName(arg), nil
	}
	return 0, fmt.Errorf("content id %q is neither numeric nor a short code", arg)
}
