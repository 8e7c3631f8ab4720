package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/ports"
)

const defaultRunsDir = "runs"
const maskValue = "********"

// JSONStore persists invocation artifacts as timestamped JSON files under the
// plugin root. It is a plugin-local convenience; the host keeps its own history.
type JSONStore struct {
	rootDir        string
	runsDirName    string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:        root,
		runsDirName:    runsDir,
		maskingEnabled: cfg.Masking.Enabled,
		writeIndex:     false,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) SaveInvocation(art domain.InvocationArtifact) (string, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := art.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := art
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	slug := slugify(art.Person)
	if slug == "" {
		slug = "chart"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	toSave.ID = id
	if s.maskingEnabled {
		toSave = maskArtifact(toSave)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

func (s *JSONStore) ListInvocations() ([]domain.InvocationRef, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.InvocationRef{}, nil
		}
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	refs := make([]domain.InvocationRef, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		art, loadErr := s.readArtifact(filepath.Join(dir, name))
		if loadErr != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		refs = append(refs, domain.InvocationRef{
			ID:        strings.TrimSuffix(name, ".json"),
			File:      name,
			Person:    art.Person,
			StartedAt: art.StartedAt,
		})
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].StartedAt.After(refs[j].StartedAt)
	})
	return refs, nil
}

func (s *JSONStore) LoadInvocation(id string) (domain.InvocationArtifact, error) {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, "/\\") {
		return domain.InvocationArtifact{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("invalid invocation id %q", id),
		}
	}

	return s.readArtifact(filepath.Join(s.rootDir, s.runsDirName, id+".json"))
}

func (s *JSONStore) readArtifact(path string) (domain.InvocationArtifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return domain.InvocationArtifact{}, &domain.OpError{
			Op:   "runstore.read",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var art domain.InvocationArtifact
	if err := json.Unmarshal(b, &art); err != nil {
		return domain.InvocationArtifact{}, &domain.OpError{
			Op:   "runstore.decode",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return art, nil
}

func (s *JSONStore) appendIndex(dir, id, filename string, art domain.InvocationArtifact) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Person    string    `json:"person"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Person:    art.Person,
		StartedAt: art.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// maskArtifact returns a masked copy (does NOT mutate the input). Only the
// person label is personal data; positions and cusps stay as-is.
func maskArtifact(art domain.InvocationArtifact) domain.InvocationArtifact {
	out := art
	out.Person = maskValue
	out.Summary.Person = maskValue
	return out
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '_' || r == '-' || r == '.':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			// any other char -> dash
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	out = strings.ReplaceAll(out, "--", "-")
	return out
}
