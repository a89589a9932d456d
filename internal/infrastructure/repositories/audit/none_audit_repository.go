package audit

import (
	"context"
	"time"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// NoneAuditRepository discards every record.
type NoneAuditRepository struct{}

var _ repositories.AuditRepository = (*NoneAuditRepository)(nil)

// NewNoneAuditRepository returns the disabled ledger.
func NewNoneAuditRepository(_ entities.AuditSettings) (repositories.AuditRepository, error) {
	return &NoneAuditRepository{}, nil
}

func (r *NoneAuditRepository) Record(context.Context, string, entities.Candidate, time.Time) error {
	return nil
}

func (r *NoneAuditRepository) Close() error { return nil }
