package entities

// RejectReason names the first pipeline stage a candidate failed.
type RejectReason string

const (
	RejectKeywordExclusion RejectReason = "keyword_exclusion"
	RejectMaturityFailed   RejectReason = "maturity_failed"
	RejectNoFiles          RejectReason = "no_tf_files"
	RejectValidationFailed RejectReason = "terraform_validate_failed"
	RejectStructuralFailed RejectReason = "structural_failed"
	RejectBehaviorOutlier  RejectReason = "behavior_outlier"
)

// RejectReasons lists every reason in pipeline order.
func RejectReasons() []RejectReason {
	return []RejectReason{
		RejectKeywordExclusion,
		RejectMaturityFailed,
		RejectNoFiles,
		RejectValidationFailed,
		RejectStructuralFailed,
		RejectBehaviorOutlier,
	}
}

// FilterTrace records the outcome of every stage a candidate went through.
type FilterTrace struct {
	KeywordExclusionPass bool
	MaturityPass         bool
	SyntaxPass           bool
	StructuralPass       bool
	BehaviorPass         bool
	BehaviorScore        float64
	Accepted             bool
	RejectReason         RejectReason
}

// Candidate is one discovered repository travelling through the filter pipeline.
//
// Stages receive a Candidate by value and return an annotated copy, so a value
// held by one goroutine is never changed by another. Files and Features are
// treated as read-only once set.
type Candidate struct {
	Repository RepositoryMetadata
	Files      []SourceFile
	Features   FeatureVector
	Trace      FilterTrace
}

// NewCandidate starts tracking a repository; nothing has been evaluated yet.
func NewCandidate(repo RepositoryMetadata) Candidate {
	return Candidate{
		Repository: repo,
		Trace:      FilterTrace{KeywordExclusionPass: true},
	}
}

// Rejected reports whether a stage already failed.
func (c Candidate) Rejected() bool {
	return c.Trace.RejectReason != ""
}

// Terminal reports whether the candidate reached accepted or rejected.
func (c Candidate) Terminal() bool {
	return c.Trace.Accepted || c.Rejected()
}

// Reject freezes the reason on the first call; later calls keep the first reason.
func (c Candidate) Reject(reason RejectReason) Candidate {
	if c.Rejected() {
		return c
	}
	c.Trace.Accepted = false
	c.Trace.RejectReason = reason
	return c
}

// Accept marks a candidate that passed every stage. Rejected candidates stay rejected.
func (c Candidate) Accept() Candidate {
	if c.Rejected() {
		return c
	}
	c.Trace.Accepted = true
	return c
}

// WithFiles attaches the extracted source files.
func (c Candidate) WithFiles(files []SourceFile) Candidate {
	c.Files = files
	return c
}

// WithFeatures attaches the feature vector.
func (c Candidate) WithFeatures(features FeatureVector) Candidate {
	c.Features = features
	return c
}
