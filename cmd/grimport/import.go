package main

import (
	"fmt"

	"grimport/internal/cli"
	"grimport/internal/importer"

	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	var (
		exportPath string
		pattern    string
		exclusions []string
		printOnly  bool
		replace    bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "import <input-dir>",
		Short: "Copy matching scripts into the script directory",
		Long: `Walk the input directory, select python files by pattern minus the
exclusion set, and copy each one into the script directory under its
dotted name (i_dr_import.py installs as i.dr.import).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg := applyOverrides(cfg, pattern, exclusions)

			engine, err := importer.NewWithConfig(args[0], &runCfg)
			if err != nil {
				return err
			}
			if replace {
				engine.SetReplace(true)
			}
			if dryRun {
				engine.SetDryRun(true)
			}

			records, err := engine.Discover()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.Info("No matching files detected. Note that patterns are regular expressions, e.g. pattern=str.*"))
				return nil
			}

			if printOnly {
				importer.PrintRecords(cmd.OutOrStdout(), records)
				return nil
			}

			if exportPath == "" {
				exportPath = runCfg.Import.ExportPath
			}
			dest, err := engine.ResolveDestination(exportPath)
			if err != nil {
				return err
			}

			results, err := engine.InstallAll(records, dest)
			if err != nil {
				return err
			}

			copied, skipped := importer.Summarize(results)
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), cli.Info(fmt.Sprintf("Dry run: %d scripts would be imported into %s", len(records), dest)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.Success(fmt.Sprintf("Imported %d scripts into %s (%d skipped)", copied, dest, skipped)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportPath, "export-path", "e", "", "script directory of GRASS GIS (auto-detected when omitted)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "filename pattern (regular expression, anchored at the start)")
	cmd.Flags().StringArrayVar(&exclusions, "exclude", nil, "filenames or glob patterns to exclude (replaces the default set)")
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print the detected files and exit")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "overwrite already installed scripts")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be imported without copying")

	return cmd
}
