package ephe

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kodkafa/nataly/internal/ports"
)

// EnvVar is the fallback ephemeris directory variable honored by the plugin.
const EnvVar = "NATALY_EPHE_PATH"

const defaultDirName = "ephe"

// Resolver picks the ephemeris directory by precedence:
// explicit flag > NATALY_EPHE_PATH > "ephe/" under the plugin root.
type Resolver struct {
	pluginRoot string
	envVar     string
	dirName    string
	getenv     func(string) string
}

type Option func(*Resolver)

// WithDirName overrides the default directory name under the plugin root.
func WithDirName(name string) Option {
	return func(r *Resolver) {
		if strings.TrimSpace(name) != "" {
			r.dirName = name
		}
	}
}

// WithGetenv is useful for tests.
func WithGetenv(fn func(string) string) Option {
	return func(r *Resolver) { r.getenv = fn }
}

func NewResolver(pluginRoot string, opts ...Option) *Resolver {
	r := &Resolver{
		pluginRoot: pluginRoot,
		envVar:     EnvVar,
		dirName:    defaultDirName,
		getenv:     os.Getenv,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.EphemerisResolver = (*Resolver)(nil)

// Resolve returns the ephemeris directory for this invocation, or "" when no
// source applies. The explicit value wins verbatim; the default directory is
// used only when it exists and is a directory.
func (r *Resolver) Resolve(explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}

	if v := strings.TrimSpace(r.getenv(r.envVar)); v != "" {
		return v
	}

	def := filepath.Join(r.pluginRoot, r.dirName)
	if info, err := os.Stat(def); err == nil && info.IsDir() {
		return def
	}

	return ""
}
