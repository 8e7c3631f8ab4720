package tui

import (
	"log/slog"

	"github.com/kodkafa/nataly/internal/ports"
)

type Deps struct {
	Store ports.ArtifactStore

	Logger *slog.Logger
}
