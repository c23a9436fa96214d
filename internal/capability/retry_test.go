package capability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guruai/guruai/internal/guruerr"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", 3, func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryTransientThenSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", 3, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return guruerr.New(guruerr.KindTransient, "port", "rate limited")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryExhaustsBudget(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", 3, func(ctx context.Context) error {
		calls++
		return guruerr.New(guruerr.KindTransient, "port", "timeout")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if guruerr.KindOf(err) != guruerr.KindTransient {
		t.Errorf("expected transient kind, got %v", guruerr.KindOf(err))
	}
}

func TestRetryFatalNotRetried(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", 3, func(ctx context.Context) error {
		calls++
		return guruerr.New(guruerr.KindFatal, "port", "rejected")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("fatal error should not be retried, got %d calls", calls)
	}
}

func TestRetryInvalidInputNotRetried(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", 3, func(ctx context.Context) error {
		calls++
		return guruerr.New(guruerr.KindInvalidInput, "port", "bad image")
	})
	if guruerr.KindOf(err) != guruerr.KindInvalidInput {
		t.Errorf("expected invalid input kind, got %v", guruerr.KindOf(err))
	}
	if calls != 1 {
		t.Errorf("invalid input should not be retried, got %d calls", calls)
	}
}

func TestRetryRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, "test", 5, func(ctx context.Context) error {
			calls++
			if calls == 1 {
				cancel()
			}
			return guruerr.New(guruerr.KindTransient, "port", "timeout")
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not observe cancellation")
	}
}
