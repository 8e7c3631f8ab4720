package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kodkafa/nataly/internal/domain"
)

func writeManifest(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, ManifestFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const validManifest = `
name: nataly
version: 0.3.0
description: Natal chart computation plugin
entrypoint: nataly
parameters:
  - name: person
    kind: string
    required: true
    complex: true
  - name: birth
    kind: string
    required: true
    complex: true
  - name: house-system
    kind: enum
    default: Placidus
    enum: [Placidus, Koch, WholeSign, Equal]
  - name: ephe-path
    kind: path
  - name: lat
    kind: float
    required: true
`

func TestLoad_Valid(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, validManifest)

	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if m.Name != "nataly" || m.Entrypoint != "nataly" {
		t.Fatalf("identity = %q / %q", m.Name, m.Entrypoint)
	}
	if len(m.Parameters) != 5 {
		t.Fatalf("expected 5 parameters, got %d", len(m.Parameters))
	}
	if !m.Parameters[0].Complex {
		t.Error("expected person marked complex")
	}
	if got := m.Parameters[2].Enum; len(got) != 4 {
		t.Errorf("house-system enum = %v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		m    Manifest
	}{
		{"missing name", Manifest{Entrypoint: "nataly"}},
		{"missing entrypoint", Manifest{Name: "nataly"}},
		{"unnamed parameter", Manifest{Name: "n", Entrypoint: "n",
			Parameters: []Parameter{{Kind: "string"}}}},
		{"duplicate parameter", Manifest{Name: "n", Entrypoint: "n",
			Parameters: []Parameter{{Name: "tz", Kind: "string"}, {Name: "tz", Kind: "string"}}}},
		{"bad kind", Manifest{Name: "n", Entrypoint: "n",
			Parameters: []Parameter{{Name: "tz", Kind: "offset"}}}},
		{"enum without values", Manifest{Name: "n", Entrypoint: "n",
			Parameters: []Parameter{{Name: "format", Kind: "enum"}}}},
		{"values without enum kind", Manifest{Name: "n", Entrypoint: "n",
			Parameters: []Parameter{{Name: "tz", Kind: "string", Enum: []string{"x"}}}}},
	}
	for _, c := range cases {
		if err := c.m.Validate(); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "name: [broken")

	_, err := Load(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}
