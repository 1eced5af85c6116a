package ports

import (
	"context"

	"github.com/bnema/p4runner/internal/domain"
)

// CommandLog persists per-execution timing records for observability.
type CommandLog interface {
	Record(ctx context.Context, record domain.CommandRecord) error
	Recent(ctx context.Context, limit int) ([]domain.CommandRecord, error)
}
