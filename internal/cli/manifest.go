package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodkafa/nataly/internal/infra/manifest"
)

func manifestCmd() *cobra.Command {
	var pluginDir string

	c := &cobra.Command{
		Use:   "manifest",
		Short: "Print the plugin manifest as JSON (consumed by the KODKAFA host)",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := resolvePluginRoot(pluginDir)
			if err != nil {
				return err
			}

			m, err := manifest.Load(root)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}

	c.Flags().StringVar(&pluginDir, "plugin-dir", "", "Plugin root (optional; autodetected if omitted)")
	return c
}
