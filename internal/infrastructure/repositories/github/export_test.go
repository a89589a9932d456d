package github

import (
	"time"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
)

// NewGitHubPlatformRepositoryWithClock builds the repository with a fixed clock for testing.
func NewGitHubPlatformRepositoryWithClock(
	settings entities.PlatformSettings,
	now func() time.Time,
) (*GitHubPlatformRepository, error) {
	p, err := newGitHubPlatformRepository(settings)
	if err != nil {
		return nil, err
	}
	p.now = now
	return p, nil
}
