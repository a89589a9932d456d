//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// SpyValidatorRepository implements repositories.ValidatorRepository as a configurable spy.
type SpyValidatorRepository struct {
	mu sync.Mutex

	// Verdict decides per call; nil passes every call
	Verdict func(files []entities.SourceFile) entities.ValidationVerdict
	Err     error

	// spy: file sets received
	Calls [][]entities.SourceFile
}

var _ repositories.ValidatorRepository = (*SpyValidatorRepository)(nil)

func (v *SpyValidatorRepository) Name() string { return "terraform" }

func (v *SpyValidatorRepository) Validate(
	_ context.Context,
	files []entities.SourceFile,
) (entities.ValidationVerdict, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Calls = append(v.Calls, files)
	if v.Err != nil {
		return entities.ValidationVerdict{}, v.Err
	}
	if v.Verdict != nil {
		return v.Verdict(files), nil
	}
	return entities.PassedVerdict(), nil
}

// CallCount returns how many file sets were validated.
func (v *SpyValidatorRepository) CallCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.Calls)
}
