package entities

// CrawlReport summarizes one run of the pipeline.
type CrawlReport struct {
	RunID      string
	Discovered int // search hits
	Unresolved int // no resolvable head commit
	Errored    int // skipped after a transport error
	Accepted   int
	Rejected   map[RejectReason]int
	OutputPath string
}

// NewCrawlReport starts an empty report for the given run.
func NewCrawlReport(runID string) *CrawlReport {
	return &CrawlReport{RunID: runID, Rejected: make(map[RejectReason]int)}
}

// Tally counts a terminal candidate.
func (r *CrawlReport) Tally(c Candidate) {
	if !c.Terminal() {
		return
	}
	if c.Trace.Accepted {
		r.Accepted++
		return
	}
	r.Rejected[c.Trace.RejectReason]++
}

// TotalRejected sums the rejections over every reason.
func (r *CrawlReport) TotalRejected() int {
	total := 0
	for _, count := range r.Rejected {
		total += count
	}
	return total
}
