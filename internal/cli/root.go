package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kodkafa/nataly/internal/infra/logger"
	"github.com/kodkafa/nataly/internal/infra/plugindir"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "nataly",
		Short:        "nataly — natal chart plugin for the KODKAFA CLI",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}

			logRoot := wd
			if root, ferr := plugindir.NewFinder().FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: debug,
			})
			if cleanup != nil {
				cobra.OnFinalize(func() { _ = cleanup() })
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .nataly/logs/nataly.log")

	cmd.AddCommand(runCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(manifestCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
