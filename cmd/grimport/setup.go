package main

import (
	"fmt"
	"os"
	"path/filepath"

	"grimport/internal/cli"
	"grimport/internal/config"

	"github.com/spf13/cobra"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	var (
		exportPath string
		pattern    string
		exclusions []string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write a config file with the given defaults",
		Long: `Write the configuration file so future runs pick up the same export
path, pattern and exclusion set without repeating the flags. Flags left
unset keep their built-in defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			newCfg := config.New()
			if exportPath != "" {
				newCfg.Import.ExportPath = exportPath
			}
			if pattern != "" {
				newCfg.Import.Pattern = pattern
			}
			if len(exclusions) > 0 {
				newCfg.Import.Exclusions = exclusions
			}
			newCfg.Settings.Replace = replace

			if err := newCfg.Validate(); err != nil {
				return err
			}

			configPath := cfgFile
			if configPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				configPath = filepath.Join(home, ".config", "grimport", "config.yaml")
			}

			if err := config.SaveConfig(newCfg, configPath); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Success(fmt.Sprintf("Configuration saved to %s", configPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportPath, "export-path", "e", "", "script directory of GRASS GIS (auto-detected when omitted)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "filename pattern (regular expression, anchored at the start)")
	cmd.Flags().StringArrayVar(&exclusions, "exclude", nil, "filenames or glob patterns to exclude (replaces the default set)")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "overwrite already installed scripts by default")

	return cmd
}
