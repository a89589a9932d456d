//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// SpyAuditRepository implements repositories.AuditRepository and keeps every record.
type SpyAuditRepository struct {
	mu        sync.Mutex
	RecordErr error
	Closed    bool

	// spy: candidates recorded, by repository full name
	Recorded map[string]entities.Candidate
	RunIDs   map[string]struct{}
}

var _ repositories.AuditRepository = (*SpyAuditRepository)(nil)

func (a *SpyAuditRepository) Record(
	_ context.Context,
	runID string,
	candidate entities.Candidate,
	_ time.Time,
) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Recorded == nil {
		a.Recorded = make(map[string]entities.Candidate)
		a.RunIDs = make(map[string]struct{})
	}
	a.Recorded[candidate.Repository.FullName] = candidate
	a.RunIDs[runID] = struct{}{}
	return a.RecordErr
}

func (a *SpyAuditRepository) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Closed = true
	return nil
}
