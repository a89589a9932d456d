//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositorySummaryBuilder helps create search hits with a fluent interface.
type RepositorySummaryBuilder struct {
	*testkit.BaseBuilder
	id            int64
	fullName      string
	stars         int
	forks         int
	pushedAt      time.Time
	defaultBranch string
	license       string
}

// NewRepositorySummaryBuilder creates a builder for a mature, recently pushed repository.
func NewRepositorySummaryBuilder() *RepositorySummaryBuilder {
	b := &RepositorySummaryBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *RepositorySummaryBuilder) defaults() {
	b.id = 1
	b.fullName = "acme/network"
	b.stars = 120
	b.forks = 30
	b.pushedAt = time.Now().AddDate(0, -1, 0)
	b.defaultBranch = "main"
	b.license = "MIT"
}

// WithID sets the platform repository id.
func (b *RepositorySummaryBuilder) WithID(id int64) *RepositorySummaryBuilder {
	b.id = id
	return b
}

// WithFullName sets the "owner/name" of the repository.
func (b *RepositorySummaryBuilder) WithFullName(fullName string) *RepositorySummaryBuilder {
	b.fullName = fullName
	return b
}

// WithStars sets the star count.
func (b *RepositorySummaryBuilder) WithStars(stars int) *RepositorySummaryBuilder {
	b.stars = stars
	return b
}

// WithForks sets the fork count.
func (b *RepositorySummaryBuilder) WithForks(forks int) *RepositorySummaryBuilder {
	b.forks = forks
	return b
}

// WithPushedAt sets the last push timestamp.
func (b *RepositorySummaryBuilder) WithPushedAt(pushedAt time.Time) *RepositorySummaryBuilder {
	b.pushedAt = pushedAt
	return b
}

// WithDefaultBranch sets the default branch.
func (b *RepositorySummaryBuilder) WithDefaultBranch(branch string) *RepositorySummaryBuilder {
	b.defaultBranch = branch
	return b
}

// WithLicense sets the SPDX license id.
func (b *RepositorySummaryBuilder) WithLicense(license string) *RepositorySummaryBuilder {
	b.license = license
	return b
}

// Build creates the summary (satisfies testkit.Builder interface).
func (b *RepositorySummaryBuilder) Build() interface{} {
	return b.BuildSummary()
}

// BuildSummary creates the summary with a concrete return type.
func (b *RepositorySummaryBuilder) BuildSummary() entities.RepositorySummary {
	return entities.RepositorySummary{
		ID:            b.id,
		FullName:      b.fullName,
		HTMLURL:       "https://github.com/" + b.fullName,
		Stars:         b.stars,
		Forks:         b.forks,
		PushedAt:      b.pushedAt,
		DefaultBranch: b.defaultBranch,
		License:       b.license,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositorySummaryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the RepositorySummaryBuilder.
func (b *RepositorySummaryBuilder) Clone() testkit.Builder {
	return &RepositorySummaryBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:            b.id,
		fullName:      b.fullName,
		stars:         b.stars,
		forks:         b.forks,
		pushedAt:      b.pushedAt,
		defaultBranch: b.defaultBranch,
		license:       b.license,
	}
}
