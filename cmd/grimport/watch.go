package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grimport/internal/cli"
	"grimport/internal/importer"
	"grimport/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var (
		exportPath string
		pattern    string
		exclusions []string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <input-dir>",
		Short: "Watch a directory and import new scripts as they appear",
		Long: `Perform an initial import of the input directory, then keep watching it
and install any matching script the moment it shows up. Stop with Ctrl-C.`,
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

			if exportPath == "" {
				exportPath = runCfg.Import.ExportPath
			}
			dest, err := engine.ResolveDestination(exportPath)
			if err != nil {
				return err
			}

			// Catch up on what is already there before watching
			records, err := engine.Discover()
			if err != nil {
				return err
			}
			results, err := engine.InstallAll(records, dest)
			if err != nil {
				return err
			}
			copied, skipped := importer.Summarize(results)
			fmt.Fprintln(cmd.OutOrStdout(), cli.Info(fmt.Sprintf("Initial import: %d copied, %d skipped", copied, skipped)))

			debounce := time.Duration(runCfg.WatchMode.Debounce) * time.Millisecond
			watcher, err := watch.New(engine, dest, debounce)
			if err != nil {
				return err
			}
			if err := watcher.AddTree(args[0]); err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.Info(fmt.Sprintf("Watching %s, importing into %s (Ctrl-C to stop)", args[0], dest)))

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			watcher.Stop()
			fmt.Fprintln(cmd.OutOrStdout(), cli.Info("Watch stopped"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportPath, "export-path", "e", "", "script directory of GRASS GIS (auto-detected when omitted)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "filename pattern (regular expression, anchored at the start)")
	cmd.Flags().StringArrayVar(&exclusions, "exclude", nil, "filenames or glob patterns to exclude (replaces the default set)")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "overwrite already installed scripts")

	return cmd
}
