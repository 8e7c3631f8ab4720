package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
)

type fakeEngine struct {
	gotEphePath string
	summary     domain.ChartSummary
	err         error
}

func (f *fakeEngine) Compute(ctx context.Context, req domain.ChartRequest, ephePath string) (domain.ChartSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChartSummary{}, err
	}
	f.gotEphePath = ephePath
	return f.summary, f.err
}

type fakeResolver struct {
	result string
}

func (f fakeResolver) Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return f.result
}

type fakeStore struct {
	saved []domain.InvocationArtifact
	id    string
	err   error
}

func (f *fakeStore) SaveInvocation(art domain.InvocationArtifact) (string, error) {
	f.saved = append(f.saved, art)
	return f.id, f.err
}

func (f *fakeStore) ListInvocations() ([]domain.InvocationRef, error) { return nil, nil }

func (f *fakeStore) LoadInvocation(string) (domain.InvocationArtifact, error) {
	return domain.InvocationArtifact{}, nil
}

func request() domain.ChartRequest {
	return domain.ChartRequest{
		Person:      "Ada",
		Birth:       "1815-12-10 13:30",
		TZ:          "+01:00",
		Location:    domain.Coordinates{Lat: 51.5, Lon: -0.12},
		HouseSystem: domain.HouseSystemPlacidus,
		Format:      domain.FormatText,
	}
}

func TestExecute_SavesArtifact(t *testing.T) {
	eng := &fakeEngine{summary: domain.ChartSummary{Person: "Ada"}}
	store := &fakeStore{id: "20260203T101112Z_ada"}

	uc := NewComputeChart(eng, fakeResolver{result: "/opt/ephe"}, store)
	art, id, err := uc.Execute(context.Background(), request())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if id != "20260203T101112Z_ada" || art.ID != id {
		t.Fatalf("id = %q, art.ID = %q", id, art.ID)
	}
	if eng.gotEphePath != "/opt/ephe" {
		t.Fatalf("engine saw ephe path %q", eng.gotEphePath)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(store.saved))
	}

	saved := store.saved[0]
	if saved.EphePath != "/opt/ephe" {
		t.Errorf("artifact ephe path = %q", saved.EphePath)
	}
	wantUTC := time.Date(1815, 12, 10, 12, 30, 0, 0, time.UTC)
	if !saved.UTC.Equal(wantUTC) {
		t.Errorf("artifact UTC = %v, want %v", saved.UTC, wantUTC)
	}
	if saved.Summary.Person != "Ada" {
		t.Errorf("artifact summary = %+v", saved.Summary)
	}
}

func TestExecute_ExplicitEphePathForwarded(t *testing.T) {
	eng := &fakeEngine{}

	uc := NewComputeChart(eng, fakeResolver{result: "/default"}, nil)
	req := request()
	req.EphePath = "/explicit"

	if _, _, err := uc.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if eng.gotEphePath != "/explicit" {
		t.Fatalf("engine saw %q", eng.gotEphePath)
	}
}

func TestExecute_NilStoreSkipsSaving(t *testing.T) {
	eng := &fakeEngine{summary: domain.ChartSummary{Person: "Ada"}}

	uc := NewComputeChart(eng, fakeResolver{}, nil)
	art, id, err := uc.Execute(context.Background(), request())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if id != "" || art.ID != "" {
		t.Fatalf("expected no id, got %q / %q", id, art.ID)
	}
	if art.Summary.Person != "Ada" {
		t.Fatalf("expected summary, got %+v", art.Summary)
	}
}

func TestExecute_InvalidRequestNeverReachesEngine(t *testing.T) {
	eng := &fakeEngine{}

	uc := NewComputeChart(eng, fakeResolver{}, nil)
	req := request()
	req.TZ = "bogus"

	_, _, err := uc.Execute(context.Background(), req)
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
	if eng.gotEphePath != "" {
		t.Fatal("engine should not have been invoked")
	}
}

func TestExecute_EngineErrorPropagates(t *testing.T) {
	wantErr := &domain.OpError{Op: "natalyexec.compute", Kind: domain.KindEngine, Err: errors.New("boom")}
	eng := &fakeEngine{err: wantErr}
	store := &fakeStore{}

	uc := NewComputeChart(eng, fakeResolver{}, store)
	_, _, err := uc.Execute(context.Background(), request())
	if !domain.IsKind(err, domain.KindEngine) {
		t.Fatalf("expected KindEngine, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatal("failed computations must not be saved")
	}
}

func TestExecute_SaveFailureStillReturnsArtifact(t *testing.T) {
	eng := &fakeEngine{summary: domain.ChartSummary{Person: "Ada"}}
	store := &fakeStore{err: errors.New("disk full")}

	uc := NewComputeChart(eng, fakeResolver{}, store)
	art, id, err := uc.Execute(context.Background(), request())
	if err == nil {
		t.Fatal("expected save error")
	}
	if id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
	if art.Summary.Person != "Ada" {
		t.Fatal("expected computed artifact despite save failure")
	}
}

func TestExecute_CanceledContext(t *testing.T) {
	eng := &fakeEngine{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewComputeChart(eng, fakeResolver{}, nil)
	if _, _, err := uc.Execute(ctx, request()); err == nil {
		t.Fatal("expected context error")
	}
}
