package repositories

import (
	"fmt"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	domainRepos "github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// AuditFactory opens an AuditRepository from its settings.
type AuditFactory func(settings entities.AuditSettings) (domainRepos.AuditRepository, error)

// AuditRegistry manages all registered audit ledger backends.
type AuditRegistry struct {
	backends map[string]AuditFactory
}

// NewAuditRegistry creates an empty audit registry.
func NewAuditRegistry() *AuditRegistry {
	return &AuditRegistry{
		backends: make(map[string]AuditFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "sqlite").
func (r *AuditRegistry) Register(name string, factory AuditFactory) {
	r.backends[name] = factory
}

// Get opens the backend named by settings.Backend; an empty name selects "none".
func (r *AuditRegistry) Get(settings entities.AuditSettings) (domainRepos.AuditRepository, error) {
	name := settings.Backend
	if name == "" {
		name = entities.AuditNone
	}
	factory, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown audit backend: %q", name)
	}
	return factory(settings)
}
