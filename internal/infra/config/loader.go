package config

import (
	"os"
	"path/filepath"

	"github.com/kodkafa/nataly/internal/domain"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional plugin configuration file under the plugin root.
const ConfigFile = "nataly.yaml"

// Load reads nataly.yaml from the plugin root and applies defaults. A missing
// file is not an error: the plugin works out of the box once installed.
func Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Nataly.Masking.Enabled != nil {
		cfg.Masking.Enabled = *y.Nataly.Masking.Enabled
	}
	if y.Nataly.Defaults.HouseSystem != "" {
		cfg.Defaults.HouseSystem = domain.HouseSystem(y.Nataly.Defaults.HouseSystem)
	}
	if y.Nataly.Defaults.Format != "" {
		f, err := domain.ParseOutputFormat(y.Nataly.Defaults.Format)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Defaults.Format = f
	}
	if y.Nataly.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Nataly.Paths.RunsDir
	}
	if y.Nataly.Paths.EpheDir != "" {
		cfg.Paths.EpheDir = y.Nataly.Paths.EpheDir
	}
	if y.Nataly.Engine.Binary != "" {
		cfg.Engine.Binary = y.Nataly.Engine.Binary
	}
	if y.Nataly.Engine.TimeoutSeconds != nil {
		cfg.Engine.TimeoutSeconds = *y.Nataly.Engine.TimeoutSeconds
	}

	return cfg, nil
}

type yamlConfig struct {
	Nataly struct {
		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Defaults struct {
			HouseSystem string `yaml:"house_system"`
			Format      string `yaml:"format"`
		} `yaml:"defaults"`

		Paths struct {
			RunsDir string `yaml:"runs_dir"`
			EpheDir string `yaml:"ephe_dir"`
		} `yaml:"paths"`

		Engine struct {
			Binary         string `yaml:"binary"`
			TimeoutSeconds *int   `yaml:"timeout_seconds"`
		} `yaml:"engine"`
	} `yaml:"nataly"`
}
