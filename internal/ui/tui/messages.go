package tui

import "github.com/kodkafa/nataly/internal/domain"

type invocationsLoadedMsg struct {
	refs []domain.InvocationRef
	err  error
}

type invocationDetailMsg struct {
	id  string
	art domain.InvocationArtifact
	err error
}
