package ports

import (
	"context"

	"github.com/kodkafa/nataly/internal/domain"
)

// ChartEngine computes a natal chart from a validated request. Implementations
// wrap the external nataly computation library; the plugin owns no chart math.
type ChartEngine interface {
	Compute(ctx context.Context, req domain.ChartRequest, ephePath string) (domain.ChartSummary, error)
}
