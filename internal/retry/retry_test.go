package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	op := func() (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("attempt %d failed", calls)
		}
		return "ok", nil
	}

	result, err := Do(context.Background(), Policy{MaxAttempts: 3}, op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %q", result)
	}
	if calls != 3 {
		t.Errorf("expected exactly 3 calls, got %d", calls)
	}
}

func TestDo_StopsOnFirstSuccess(t *testing.T) {
	calls := 0
	op := func() (int, error) {
		calls++
		return 42, nil
	}

	result, err := Do(context.Background(), Policy{MaxAttempts: 5}, op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 42 {
		t.Errorf("expected 42, got %d", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_PropagatesLastError(t *testing.T) {
	calls := 0
	op := func() (string, error) {
		calls++
		return "", fmt.Errorf("failure %d", calls)
	}

	_, err := Do(context.Background(), Policy{MaxAttempts: 3}, op)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if err.Error() != "retry: 3 attempts exhausted: failure 3" {
		t.Errorf("expected last failure wrapped, got %q", err.Error())
	}
}

func TestDo_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
	}{
		{"zero attempts", 0},
		{"negative attempts", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := Do(context.Background(), Policy{MaxAttempts: tt.maxAttempts}, func() (int, error) {
				calls++
				return 0, nil
			})
			if !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("expected ErrInvalidPolicy, got %v", err)
			}
			if calls != 0 {
				t.Errorf("op should never run with an invalid policy, ran %d times", calls)
			}
		})
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	op := func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("still failing")
	}

	_, err := Do(ctx, Policy{MaxAttempts: 10, Delay: time.Millisecond}, op)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no retries after cancellation, got %d calls", calls)
	}
}

func TestPoll_ReturnsFirstAcceptedResult(t *testing.T) {
	calls := 0
	op := func() (int, error) {
		calls++
		return calls, nil
	}

	result, err := Poll(context.Background(), Policy{MaxAttempts: 5}, op, func(n int) bool {
		return n >= 4
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 4 {
		t.Errorf("expected 4, got %d", result)
	}
	if calls != 4 {
		t.Errorf("expected exactly 4 calls, got %d", calls)
	}
}

func TestPoll_OperationErrorIsHardFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	op := func() (int, error) {
		calls++
		if calls == 2 {
			return 0, boom
		}
		return calls, nil
	}

	_, err := Poll(context.Background(), Policy{MaxAttempts: 5}, op, func(int) bool {
		return false
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected op error to propagate, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected poll to stop at the throwing attempt, got %d calls", calls)
	}
}

func TestPoll_ExhaustionCarriesLastResult(t *testing.T) {
	calls := 0
	op := func() (int, error) {
		calls++
		return calls * 10, nil
	}

	_, err := Poll(context.Background(), Policy{MaxAttempts: 3}, op, func(int) bool {
		return false
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var pe *PredicateError[int]
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PredicateError, got %T", err)
	}
	if pe.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", pe.Attempts)
	}
	if pe.LastResult != 30 {
		t.Errorf("expected last result 30, got %d", pe.LastResult)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestPoll_InvalidPolicy(t *testing.T) {
	_, err := Poll(context.Background(), Policy{}, func() (int, error) {
		t.Fatal("op should not be invoked")
		return 0, nil
	}, func(int) bool { return true })
	if !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestWait_ZeroDelayStillObservesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := wait(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := wait(context.Background(), 0); err != nil {
		t.Errorf("expected nil for live context, got %v", err)
	}
}
