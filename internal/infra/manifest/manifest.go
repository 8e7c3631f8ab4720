package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kodkafa/nataly/internal/domain"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the plugin manifest the KODKAFA host reads at install time.
const ManifestFile = "plugin.yaml"

// Manifest describes the plugin to the host: identity, how to invoke it, and
// the parameter table the host forwards and records in its own history.
type Manifest struct {
	Name        string      `json:"name" yaml:"name"`
	Version     string      `json:"version,omitempty" yaml:"version"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Author      string      `json:"author,omitempty" yaml:"author"`
	Entrypoint  string      `json:"entrypoint" yaml:"entrypoint"`
	Parameters  []Parameter `json:"parameters" yaml:"parameters"`
}

// Parameter is one forwarded CLI flag.
type Parameter struct {
	Name        string   `json:"name" yaml:"name"`
	Kind        string   `json:"kind" yaml:"kind"` // string|float|enum|path
	Description string   `json:"description,omitempty" yaml:"description"`
	Required    bool     `json:"required,omitempty" yaml:"required"`
	Default     string   `json:"default,omitempty" yaml:"default"`
	Enum        []string `json:"enum,omitempty" yaml:"enum"`

	// Complex indicates the host should remember the value in its invocation
	// history. The history schema itself is owned by the host.
	Complex bool `json:"complex,omitempty" yaml:"complex"`
}

var validKinds = map[string]bool{
	"string": true,
	"float":  true,
	"enum":   true,
	"path":   true,
}

// Load reads and validates the manifest under the plugin root.
func Load(root string) (Manifest, error) {
	path := filepath.Join(root, ManifestFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &domain.OpError{
			Op:   "manifest.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, &domain.OpError{
			Op:   "manifest.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, &domain.OpError{
			Op:   "manifest.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return m, nil
}

// Validate checks the fields the host depends on.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("plugin must have a name")
	}
	if strings.TrimSpace(m.Entrypoint) == "" {
		return fmt.Errorf("plugin must have an entrypoint")
	}

	seen := map[string]bool{}
	for i, p := range m.Parameters {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("parameters[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("parameters[%d]: duplicate parameter %q", i, p.Name)
		}
		seen[p.Name] = true

		if !validKinds[p.Kind] {
			return fmt.Errorf("parameters[%d] (%s): unsupported kind %q", i, p.Name, p.Kind)
		}
		if p.Kind == "enum" && len(p.Enum) == 0 {
			return fmt.Errorf("parameters[%d] (%s): enum kind requires values", i, p.Name)
		}
		if p.Kind != "enum" && len(p.Enum) > 0 {
			return fmt.Errorf("parameters[%d] (%s): enum values on non-enum kind", i, p.Name)
		}
	}
	return nil
}
