package main

import (
	"fmt"

	"grimport/internal/cli"
	"grimport/internal/importer"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		pattern    string
		exclusions []string
	)

	cmd := &cobra.Command{
		Use:   "list <input-dir>",
		Short: "List the scripts an import would pick up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg := applyOverrides(cfg, pattern, exclusions)

			engine, err := importer.NewWithConfig(args[0], &runCfg)
			if err != nil {
				return err
			}

			records, err := engine.Discover()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.Info("No matching files detected."))
				return nil
			}

			importer.PrintRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "filename pattern (regular expression, anchored at the start)")
	cmd.Flags().StringArrayVar(&exclusions, "exclude", nil, "filenames or glob patterns to exclude (replaces the default set)")

	return cmd
}
