package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/infra/logger"
	"github.com/kodkafa/nataly/internal/ui/tui"
)

func historyCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Inspect invocation artifacts saved under runs/",
	}

	c.AddCommand(historyListCmd())
	c.AddCommand(historyShowCmd())
	c.AddCommand(historyBrowseCmd())
	return c
}

func historyListCmd() *cobra.Command {
	var pluginDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved invocations",
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := loadPlugin(pluginDir)
			if err != nil {
				return err
			}

			refs, err := p.store.ListInvocations()
			if err != nil {
				return err
			}

			if len(refs) == 0 {
				fmt.Println("(no saved invocations)")
				return nil
			}

			fmt.Printf("Plugin: %s\n\n", p.root)
			for _, r := range refs {
				fmt.Printf("- %s  %s  (%s)\n", r.StartedAt.UTC().Format(time.RFC3339), r.Person, r.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "Plugin root (optional; autodetected if omitted)")
	return cmd
}

func historyShowCmd() *cobra.Command {
	var pluginDir string
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render a saved invocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlugin(pluginDir)
			if err != nil {
				return err
			}

			art, err := p.store.LoadInvocation(args[0])
			if err != nil {
				return err
			}

			f := p.cfg.Defaults.Format
			if format != "" {
				f, err = domain.ParseOutputFormat(format)
				if err != nil {
					return err
				}
			}

			return printChart(cmd.OutOrStdout(), art.Summary, f)
		},
	}

	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "Plugin root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: text|json|both")
	return cmd
}

func historyBrowseCmd() *cobra.Command {
	var pluginDir string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse saved invocations interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := loadPlugin(pluginDir)
			if err != nil {
				return err
			}

			return tui.Run(tui.Deps{
				Store:  p.store,
				Logger: logger.L(),
			})
		},
	}

	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "Plugin root (optional; autodetected if omitted)")
	return cmd
}
