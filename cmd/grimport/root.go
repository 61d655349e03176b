package main

import (
	"grimport/internal/config"
	"grimport/internal/log"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grimport",
		Short: "Import python scripts into the GRASS GIS script directory",
		Long: `grimport discovers python scripts in a package directory and installs
them into the GRASS GIS script directory. A file like i_dr_import.py is
copied as i.dr.import, ready to be called from a GRASS session.

Already installed scripts are left alone unless --replace is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetDebug(debug)

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/grimport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewImportCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewPathsCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewSetupCmd())

	return rootCmd
}

// applyOverrides folds command line flags into a copy of the loaded
// configuration so a run never mutates the shared config.
func applyOverrides(base *config.Config, pattern string, exclusions []string) config.Config {
	runCfg := *base
	if pattern != "" {
		runCfg.Import.Pattern = pattern
	}
	if len(exclusions) > 0 {
		runCfg.Import.Exclusions = exclusions
	}
	return runCfg
}
