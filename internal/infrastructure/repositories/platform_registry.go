package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	domainRepos "github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// PlatformFactory builds a PlatformRepository from its settings.
type PlatformFactory func(settings entities.PlatformSettings) (domainRepos.PlatformRepository, error)

// PlatformRegistry manages all registered source-code platform implementations.
type PlatformRegistry struct {
	platforms map[string]PlatformFactory
}

// NewPlatformRegistry creates an empty platform registry.
func NewPlatformRegistry() *PlatformRegistry {
	return &PlatformRegistry{
		platforms: make(map[string]PlatformFactory),
	}
}

// Register adds a platform factory under the given name (e.g. "github").
func (r *PlatformRegistry) Register(name string, factory PlatformFactory) {
	r.platforms[name] = factory
}

// Get returns a configured platform instance for settings.Type.
func (r *PlatformRegistry) Get(settings entities.PlatformSettings) (domainRepos.PlatformRepository, error) {
	factory, ok := r.platforms[settings.Type]
	if !ok {
		return nil, fmt.Errorf("unknown platform type: %q (available: %s)", settings.Type, strings.Join(r.Names(), ", "))
	}
	return factory(settings)
}

// Names returns the registered platform names in lexical order.
func (r *PlatformRegistry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
