package repositories

import (
	"fmt"
	"sort"
	"strings"

	domainRepos "github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// DatasetRegistry manages all registered dataset file formats.
type DatasetRegistry struct {
	formats map[string]domainRepos.DatasetRepository
}

// NewDatasetRegistry creates an empty dataset registry.
func NewDatasetRegistry() *DatasetRegistry {
	return &DatasetRegistry{
		formats: make(map[string]domainRepos.DatasetRepository),
	}
}

// Register adds a dataset writer under its format.
func (r *DatasetRegistry) Register(d domainRepos.DatasetRepository) {
	r.formats[d.Format()] = d
}

// Get returns the writer of the given format.
func (r *DatasetRegistry) Get(format string) (domainRepos.DatasetRepository, error) {
	d, ok := r.formats[format]
	if !ok {
		return nil, fmt.Errorf("unknown dataset format: %q (available: %s)", format, strings.Join(r.Formats(), ", "))
	}
	return d, nil
}

// Formats returns the registered format names in lexical order.
func (r *DatasetRegistry) Formats() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
