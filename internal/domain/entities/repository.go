package entities

import "time"

const daysPerMonth = 30

// RepositorySummary is a raw search hit as reported by the hosting platform,
// before the head commit and readme are resolved.
type RepositorySummary struct {
	ID            int64
	FullName      string // "owner/name"
	HTMLURL       string
	Stars         int
	Forks         int
	PushedAt      time.Time
	DefaultBranch string
	License       string // SPDX identifier; empty when the platform reports none
}

// RepositoryMetadata is the normalized view of a discovered repository.
// It is created once by the prober and never mutated afterwards.
type RepositoryMetadata struct {
	ID                    int64
	FullName              string
	HTMLURL               string
	Stars                 int
	Forks                 int
	MonthsSinceLastCommit int
	HasReadme             bool
	ReadmeText            string
	License               string
	DefaultBranch         string
	HeadCommit            string
}

// TreeEntry is one entry of a recursive repository tree listing.
type TreeEntry struct {
	Path string
	Type string // "blob", "tree" or "commit"
	SHA  string
	Size int
}

// IsBlob reports whether the entry points at file content.
func (e TreeEntry) IsBlob() bool {
	return e.Type == "blob"
}

// MonthsSince returns the whole number of 30-day months between pushedAt and now.
// Timestamps in the future count as zero.
func MonthsSince(pushedAt, now time.Time) int {
	days := int(now.Sub(pushedAt).Hours() / 24) //nolint:mnd // hours per day
	if days < 0 {
		days = 0
	}
	return days / daysPerMonth
}
