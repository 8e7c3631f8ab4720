package domain

import "time"

// InvocationArtifact represents a persisted invocation for reproducibility.
// It echoes the parameters the host forwarded plus the computed summary; the
// host's own history store is a separate concern with its own schema.
type InvocationArtifact struct {
	ID string `json:"id,omitempty"`

	Person      string       `json:"person"`
	Birth       string       `json:"birth"`
	TZ          string       `json:"tz"`
	Location    Coordinates  `json:"location"`
	HouseSystem HouseSystem  `json:"house_system"`
	Format      OutputFormat `json:"format"`

	UTC      time.Time `json:"dt_utc"`
	EphePath string    `json:"ephe_path,omitempty"` // resolved, not the raw flag

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	EngineMS   int64     `json:"engine_ms"`

	Summary ChartSummary `json:"summary"`
}

// InvocationRef is a lightweight listing entry for saved invocations.
type InvocationRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Person    string    `json:"person"`
	StartedAt time.Time `json:"started_at"`
}
