package plugindir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kodkafa/nataly/internal/domain"
)

func touchManifest(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "plugin.yaml"), []byte("name: nataly\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func noExecutable() (string, error) { return "", errors.New("no executable") }

func TestFindRoot_CurrentDir(t *testing.T) {
	root := t.TempDir()
	touchManifest(t, root)

	f := NewFinder()
	f.executable = noExecutable

	got, err := f.FindRoot(root)
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("got %q, want %q", got, root)
	}
}

func TestFindRoot_WalksUpward(t *testing.T) {
	root := t.TempDir()
	touchManifest(t, root)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	f := NewFinder()
	f.executable = noExecutable

	got, err := f.FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("got %q, want %q", got, root)
	}
}

func TestFindRoot_FilePathUsesItsDirectory(t *testing.T) {
	root := t.TempDir()
	touchManifest(t, root)

	file := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFinder()
	f.executable = noExecutable

	got, err := f.FindRoot(file)
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("got %q, want %q", got, root)
	}
}

func TestFindRoot_FallsBackToExecutableDir(t *testing.T) {
	install := t.TempDir()
	touchManifest(t, install)

	f := NewFinder()
	f.executable = func() (string, error) {
		return filepath.Join(install, "nataly"), nil
	}

	got, err := f.FindRoot(t.TempDir())
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != install {
		t.Fatalf("got %q, want %q", got, install)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	f := NewFinder()
	f.executable = noExecutable

	_, err := f.FindRoot(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	f := NewFinder()
	f.executable = noExecutable

	_, err := f.FindRoot("")
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}
