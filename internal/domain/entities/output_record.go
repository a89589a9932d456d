package entities

import (
	"fmt"
	"time"
)

const sampleCommitPrefix = 12

// FileDigest is the provenance of one emitted file; content is never emitted.
type FileDigest struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// FilterTraceRecord is the wire form of a FilterTrace. KeywordExclusion is true
// when the candidate was excluded, matching the dataset consumers' reading.
type FilterTraceRecord struct {
	KeywordExclusion     bool          `json:"keyword_exclusion"`
	MaturityPass         bool          `json:"maturity_pass"`
	SyntaxPass           bool          `json:"syntax_pass"`
	StructuralPass       bool          `json:"structural_pass"`
	BehaviorOutlierScore float64       `json:"behavior_outlier_score"`
	BehaviorPass         bool          `json:"behavior_pass"`
	Accepted             bool          `json:"accepted"`
	RejectReason         *RejectReason `json:"reject_reason"`
}

// OutputRecord is one line of the NDJSON dataset.
type OutputRecord struct {
	SampleID       string            `json:"sample_id"`
	RepoID         int64             `json:"repo_id"`
	RepoFullName   string            `json:"repo_full_name"`
	RepoURL        string            `json:"repo_url"`
	CommitSHA      string            `json:"commit_sha"`
	CrawlTimestamp string            `json:"crawl_timestamp"`
	Source         string            `json:"source"`
	License        *string           `json:"license"`
	TerraformFiles []FileDigest      `json:"terraform_files"`
	FeatureVector  FeatureVector     `json:"feature_vector"`
	FilterTrace    FilterTraceRecord `json:"filter_trace"`
}

// SampleID derives the stable identifier of a repository snapshot.
func SampleID(repoID int64, commit string) string {
	if len(commit) > sampleCommitPrefix {
		commit = commit[:sampleCommitPrefix]
	}
	return fmt.Sprintf("%d:%s", repoID, commit)
}

// NewOutputRecord projects a terminal candidate onto its emitted form.
func NewOutputRecord(c Candidate, source string, crawledAt time.Time) OutputRecord {
	repo := c.Repository

	files := make([]FileDigest, 0, len(c.Files))
	for _, file := range c.Files {
		files = append(files, FileDigest{Path: file.Path, SHA256: file.SHA256})
	}

	features := make(FeatureVector, len(c.Features))
	for key, value := range c.Features {
		features[key] = value
	}

	var license *string
	if repo.License != "" {
		id := repo.License
		license = &id
	}

	return OutputRecord{
		SampleID:       SampleID(repo.ID, repo.HeadCommit),
		RepoID:         repo.ID,
		RepoFullName:   repo.FullName,
		RepoURL:        repo.HTMLURL,
		CommitSHA:      repo.HeadCommit,
		CrawlTimestamp: crawledAt.UTC().Format(time.RFC3339),
		Source:         source,
		License:        license,
		TerraformFiles: files,
		FeatureVector:  features,
		FilterTrace:    NewFilterTraceRecord(c.Trace),
	}
}

// NewFilterTraceRecord converts the in-memory trace to its wire form.
func NewFilterTraceRecord(trace FilterTrace) FilterTraceRecord {
	record := FilterTraceRecord{
		KeywordExclusion:     !trace.KeywordExclusionPass,
		MaturityPass:         trace.MaturityPass,
		SyntaxPass:           trace.SyntaxPass,
		StructuralPass:       trace.StructuralPass,
		BehaviorOutlierScore: trace.BehaviorScore,
		BehaviorPass:         trace.BehaviorPass,
		Accepted:             trace.Accepted,
	}
	if trace.RejectReason != "" {
		reason := trace.RejectReason
		record.RejectReason = &reason
	}
	return record
}
