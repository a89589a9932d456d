package repositories

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrTreeTruncated is returned when the platform cannot list a repository tree in full.
	ErrTreeTruncated = errors.New("repository tree is truncated")

	// ErrToolNotFound is returned at startup when the validation tool binary is missing.
	ErrToolNotFound = errors.New("validation tool not found")
)

// RateLimitError reports an exhausted platform quota. Callers decide whether
// to abort or wait RetryAfter before trying again.
type RateLimitError struct {
	RetryAfter time.Duration
	Reset      time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", int64(math.Ceil(e.RetryAfter.Seconds())))
}

// AsRateLimit unwraps a *RateLimitError from err.
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr, true
	}
	return nil, false
}
