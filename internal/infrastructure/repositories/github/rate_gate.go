package github

import (
	"sync"
	"time"

	"github.com/rios0rios0/iaccrawl/internal/domain/repositories"
)

// rateGate is shared by every worker of a client: once the quota is exhausted,
// calls fail fast until the reset instead of each worker hitting the API again.
type rateGate struct {
	mu    sync.Mutex
	until time.Time
}

func (g *rateGate) check(now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if now.Before(g.until) {
		return &repositories.RateLimitError{RetryAfter: g.until.Sub(now), Reset: g.until}
	}
	return nil
}

func (g *rateGate) close(until time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if until.After(g.until) {
		g.until = until
	}
}
