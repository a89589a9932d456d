package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

const fallbackBranch = "main"

// Prober turns raw search hits into normalized repository metadata.
type Prober struct {
	platform repositories.PlatformRepository
	clock    entities.Clock
}

// NewProber creates a Prober reading from the given platform.
func NewProber(platform repositories.PlatformRepository, clock entities.Clock) *Prober {
	return &Prober{platform: platform, clock: clock}
}

// Probe resolves the head commit and readme of a search hit. It reports false
// when the default branch has no resolvable head: such a repository cannot be
// validated and is dropped before it becomes a candidate.
func (it *Prober) Probe(
	ctx context.Context,
	summary entities.RepositorySummary,
) (entities.RepositoryMetadata, bool, error) {
	branch := summary.DefaultBranch
	if branch == "" {
		branch = fallbackBranch
	}

	head, found, err := it.platform.GetHeadCommit(ctx, summary.FullName, branch)
	if err != nil {
		return entities.RepositoryMetadata{}, false, fmt.Errorf("failed to resolve head of %s: %w", summary.FullName, err)
	}
	if !found {
		logger.Debugf("[probe] %s: branch %q has no head commit, skipping", summary.FullName, branch)
		return entities.RepositoryMetadata{}, false, nil
	}

	readme, hasReadme, err := it.platform.GetReadme(ctx, summary.FullName)
	if err != nil {
		return entities.RepositoryMetadata{}, false, fmt.Errorf("failed to fetch readme of %s: %w", summary.FullName, err)
	}

	return entities.RepositoryMetadata{
		ID:                    summary.ID,
		FullName:              summary.FullName,
		HTMLURL:               summary.HTMLURL,
		Stars:                 summary.Stars,
		Forks:                 summary.Forks,
		MonthsSinceLastCommit: entities.MonthsSince(summary.PushedAt, it.clock()),
		HasReadme:             hasReadme,
		ReadmeText:            readme,
		License:               summary.License,
		DefaultBranch:         branch,
		HeadCommit:            head,
	}, true, nil
}
