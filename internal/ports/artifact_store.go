package ports

import "github.com/kodkafa/nataly/internal/domain"

// ArtifactStore persists invocation artifacts for reproducibility.
type ArtifactStore interface {
	SaveInvocation(art domain.InvocationArtifact) (id string, err error)
	ListInvocations() ([]domain.InvocationRef, error)
	LoadInvocation(id string) (domain.InvocationArtifact, error)
}
