package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"basecat/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage basecat configuration",
	}
	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			if path == "" {
				def, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = def
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Search dirs: %s\n", strings.Join(cfg.Paths.SearchDirs, ", "))
			fmt.Fprintf(out, "State dir:   %s\n", cfg.Paths.StateDir)
			fmt.Fprintf(out, "Language:    %s\n", cfg.Display.Language)
			fmt.Fprintf(out, "Logging:     %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			for _, name := range cfg.KindNames() {
				kind := cfg.Kinds[name]
				fmt.Fprintf(out, "Kind %-10s ext %-6s slots [%s]", name, kind.Extension, strings.Join(kind.Files, ", "))
				if kind.AllowEmptyFiles {
					fmt.Fprint(out, " (empty slots allowed)")
				}
				if kind.Preferred != "" {
					fmt.Fprintf(out, " preferred %q", kind.Preferred)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
