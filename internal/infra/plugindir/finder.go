package plugindir

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/ports"
)

// Finder locates the plugin root by searching for plugin.yaml upward, falling
// back to the directory holding the running executable (the install layout the
// KODKAFA host produces).
type Finder struct {
	ManifestFile string // defaults to "plugin.yaml"

	executable func() (string, error)
}

func NewFinder() *Finder {
	return &Finder{
		ManifestFile: "plugin.yaml",
		executable:   os.Executable,
	}
}

var _ ports.PluginLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "plugindir.findroot",
			Kind: domain.KindInvalidInput,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "plugindir.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If caller passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		if f.hasManifest(cur) {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root; try the installed location.
			break
		}
		cur = parent
	}

	if exe, exeErr := f.executable(); exeErr == nil {
		dir := filepath.Dir(exe)
		if f.hasManifest(dir) {
			return dir, nil
		}
	}

	return "", &domain.OpError{
		Op:   "plugindir.findroot",
		Kind: domain.KindNotFound,
		Err:  domain.ErrNotFound,
	}
}

func (f *Finder) hasManifest(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, f.ManifestFile))
	return err == nil
}
