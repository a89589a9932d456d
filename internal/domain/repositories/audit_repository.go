package repositories

import (
	"context"
	"time"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// AuditRepository keeps a ledger of every candidate that reached a terminal state,
// accepted or rejected, across runs.
type AuditRepository interface {
	Record(ctx context.Context, runID string, candidate entities.Candidate, at time.Time) error
	Close() error
}
