package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// rateLimitWait extracts the server-requested delay from a 429 body.
// Only a non-negative JSON number is honored; anything else, including a
// body that is not JSON at all, means retry immediately.
func rateLimitWait(body []byte) time.Duration {
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0
	}
	seconds, ok := parsed["seconds_to_wait"].(float64)
	if !ok || seconds <= 0 {
		return 0
	}
	// Durations beyond the int64 range would wrap negative and skip the wait
	if seconds >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}

// rateLimitState accumulates retry bookkeeping across 429 responses
type rateLimitState struct {
	attempts int
	waited   time.Duration
}

// next records one more retry. With a positive limit, it fails once the
// limit has been used up; a limit of zero never fails.
func (s *rateLimitState) next(limit int, wait time.Duration) error {
	if limit > 0 && s.attempts >= limit {
		return &RateLimitedError{Attempts: s.attempts, Waited: s.waited}
	}
	s.attempts++
	if wait > time.Duration(math.MaxInt64)-s.waited {
		s.waited = time.Duration(math.MaxInt64)
	} else {
		s.waited += wait
	}
	return nil
}

// sleepContext blocks for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("operation cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
