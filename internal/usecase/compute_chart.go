package usecase

import (
	"context"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/ports"
)

// ComputeChart validates a request, resolves the ephemeris directory, invokes
// the external engine, and optionally persists the invocation artifact.
type ComputeChart struct {
	engine ports.ChartEngine
	ephe   ports.EphemerisResolver
	store  ports.ArtifactStore // nil disables saving
}

func NewComputeChart(engine ports.ChartEngine, ephe ports.EphemerisResolver, store ports.ArtifactStore) *ComputeChart {
	return &ComputeChart{
		engine: engine,
		ephe:   ephe,
		store:  store,
	}
}

// Execute returns the saved artifact and its store ID ("" when saving is off).
func (uc *ComputeChart) Execute(ctx context.Context, req domain.ChartRequest) (domain.InvocationArtifact, string, error) {
	if err := req.Validate(); err != nil {
		return domain.InvocationArtifact{}, "", err
	}

	utc, err := req.UTC()
	if err != nil {
		return domain.InvocationArtifact{}, "", err
	}

	ephePath := uc.ephe.Resolve(req.EphePath)

	started := time.Now()
	summary, err := uc.engine.Compute(ctx, req, ephePath)
	finished := time.Now()
	if err != nil {
		return domain.InvocationArtifact{}, "", err
	}

	art := domain.InvocationArtifact{
		Person:      req.Person,
		Birth:       req.Birth,
		TZ:          req.TZ,
		Location:    req.Location,
		HouseSystem: req.HouseSystem,
		Format:      req.Format,
		UTC:         utc,
		EphePath:    ephePath,
		StartedAt:   started,
		FinishedAt:  finished,
		EngineMS:    finished.Sub(started).Milliseconds(),
		Summary:     summary,
	}

	if uc.store == nil {
		return art, "", nil
	}

	id, err := uc.store.SaveInvocation(art)
	if err != nil {
		// The chart is already computed; report it with the save failure.
		return art, "", err
	}
	art.ID = id

	return art, id, nil
}
