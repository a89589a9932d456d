//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/iaccrawl/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryMetadataBuilder helps create probed repositories with a fluent interface.
type RepositoryMetadataBuilder struct {
	*testkit.BaseBuilder
	metadata entities.RepositoryMetadata
}

// NewRepositoryMetadataBuilder creates a builder for a repository that passes maturity.
func NewRepositoryMetadataBuilder() *RepositoryMetadataBuilder {
	return &RepositoryMetadataBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		metadata:    defaultMetadata(),
	}
}

func defaultMetadata() entities.RepositoryMetadata {
	return entities.RepositoryMetadata{
		ID:                    42,
		FullName:              "acme/network",
		HTMLURL:               "https://github.com/acme/network",
		Stars:                 120,
		Forks:                 30,
		MonthsSinceLastCommit: 1,
		HasReadme:             true,
		ReadmeText:            "# Network\nVPC and subnets for production.",
		License:               "MIT",
		DefaultBranch:         "main",
		HeadCommit:            "0123456789abcdef0123456789abcdef01234567",
	}
}

// WithID sets the platform repository id.
func (b *RepositoryMetadataBuilder) WithID(id int64) *RepositoryMetadataBuilder {
	b.metadata.ID = id
	return b
}

// WithFullName sets the "owner/name" of the repository.
func (b *RepositoryMetadataBuilder) WithFullName(fullName string) *RepositoryMetadataBuilder {
	b.metadata.FullName = fullName
	b.metadata.HTMLURL = "https://github.com/" + fullName
	return b
}

// WithStars sets the star count.
func (b *RepositoryMetadataBuilder) WithStars(stars int) *RepositoryMetadataBuilder {
	b.metadata.Stars = stars
	return b
}

// WithForks sets the fork count.
func (b *RepositoryMetadataBuilder) WithForks(forks int) *RepositoryMetadataBuilder {
	b.metadata.Forks = forks
	return b
}

// WithMonthsSinceLastCommit sets the activity signal.
func (b *RepositoryMetadataBuilder) WithMonthsSinceLastCommit(months int) *RepositoryMetadataBuilder {
	b.metadata.MonthsSinceLastCommit = months
	return b
}

// WithReadme sets the readme text; an empty text means no readme.
func (b *RepositoryMetadataBuilder) WithReadme(text string) *RepositoryMetadataBuilder {
	b.metadata.ReadmeText = text
	b.metadata.HasReadme = text != ""
	return b
}

// WithLicense sets the SPDX license id.
func (b *RepositoryMetadataBuilder) WithLicense(license string) *RepositoryMetadataBuilder {
	b.metadata.License = license
	return b
}

// WithHeadCommit sets the resolved head commit.
func (b *RepositoryMetadataBuilder) WithHeadCommit(commit string) *RepositoryMetadataBuilder {
	b.metadata.HeadCommit = commit
	return b
}

// Build creates the metadata (satisfies testkit.Builder interface).
func (b *RepositoryMetadataBuilder) Build() interface{} {
	return b.BuildMetadata()
}

// BuildMetadata creates the metadata with a concrete return type.
func (b *RepositoryMetadataBuilder) BuildMetadata() entities.RepositoryMetadata {
	return b.metadata
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryMetadataBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.metadata = defaultMetadata()
	return b
}

// Clone creates a deep copy of the RepositoryMetadataBuilder.
func (b *RepositoryMetadataBuilder) Clone() testkit.Builder {
	return &RepositoryMetadataBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		metadata:    b.metadata,
	}
}
