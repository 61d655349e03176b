package main

import (
	"fmt"
	"os"

	"grimport/internal/cli"

	"github.com/spf13/cobra"
)

// NewPathsCmd creates the paths command
func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show the candidate script directories and which one resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.Header("Candidate script directories:"))

			resolved := ""
			for _, candidate := range cfg.Import.Candidates {
				info, err := os.Stat(candidate)
				if err == nil && info.IsDir() {
					if resolved == "" {
						resolved = candidate
					}
					fmt.Fprintf(out, "  %s %s\n", cli.Success("present"), candidate)
				} else {
					fmt.Fprintf(out, "  %s %s\n", cli.Dim("missing"), candidate)
				}
			}

			if cfg.Import.ExportPath != "" {
				fmt.Fprintln(out, cli.Info(fmt.Sprintf("Configured export path: %s", cfg.Import.ExportPath)))
				return nil
			}
			if resolved == "" {
				fmt.Fprintln(out, cli.Warning("No script directory found; pass --export-path to import."))
				return nil
			}
			fmt.Fprintln(out, cli.Info(fmt.Sprintf("Imports will go to %s", resolved)))
			return nil
		},
	}

	return cmd
}
