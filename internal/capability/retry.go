package capability

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/guruai/guruai/internal/guruerr"
)

// DefaultAttempts is the retry budget for transient port failures.
const DefaultAttempts = 3

// baseBackoff is the delay before the first retry; it doubles per attempt.
const baseBackoff = 500 * time.Millisecond

// Retry runs fn up to attempts times, backing off exponentially with
// jitter between tries. Only transient failures are retried; invalid
// input and fatal errors return immediately. The last error is returned
// when the budget is exhausted.
func Retry(ctx context.Context, op string, attempts int, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !guruerr.IsTransient(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		delay := backoffDelay(attempt)
		log.Printf("[retry] %s: attempt %d/%d failed (%v), retrying in %s", op, attempt, attempts, lastErr, delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	log.Printf("[retry] %s: budget of %d attempts exhausted", op, attempts)
	return lastErr
}

// backoffDelay returns the exponential delay for the given attempt number
// with up to 25% jitter added.
func backoffDelay(attempt int) time.Duration {
	delay := baseBackoff << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(delay) / 4))
	return delay + jitter
}
