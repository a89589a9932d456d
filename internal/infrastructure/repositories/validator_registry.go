package repositories

import (
	"fmt"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	domainRepos "github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// ValidatorFactory builds a ValidatorRepository. It fails with
// domainRepos.ErrToolNotFound when the tool binary cannot be located.
type ValidatorFactory func(settings entities.ValidatorSettings) (domainRepos.ValidatorRepository, error)

// ValidatorRegistry manages all registered IaC validation tools.
type ValidatorRegistry struct {
	validators map[string]ValidatorFactory
}

// NewValidatorRegistry creates an empty validator registry.
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		validators: make(map[string]ValidatorFactory),
	}
}

// Register adds a validator factory under the tool name (e.g. "terraform").
func (r *ValidatorRegistry) Register(name string, factory ValidatorFactory) {
	r.validators[name] = factory
}

// Get returns a ready validator for settings.Tool.
func (r *ValidatorRegistry) Get(settings entities.ValidatorSettings) (domainRepos.ValidatorRepository, error) {
	factory, ok := r.validators[settings.Tool]
	if !ok {
		return nil, fmt.Errorf("unknown validator tool: %q", settings.Tool)
	}
	return factory(settings)
}
