package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/tangshi/providers/ai"
)

// deadlineRecorder returns a SendFunc that records how far away its context
// deadline was when it was called.
func deadlineRecorder(remaining *[]time.Duration) func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
	return func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		deadline, ok := ctx.Deadline()
		if !ok {
			return nil, errors.New("no deadline set")
		}
		*remaining = append(*remaining, time.Until(deadline))
		return &ai.ChatResponse{Content: "ok"}, nil
	}
}

// TestTimeoutMiddleware_SetsDeadline verifies that the provider sees the
// configured deadline.
func TestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	var remaining []time.Duration
	chain := NewTimeoutMiddleware(time.Minute)(deadlineRecorder(&remaining))

	if _, err := chain(context.Background(), ai.ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining[0] <= 50*time.Second || remaining[0] > time.Minute {
		t.Errorf("remaining deadline = %v, want close to 1m", remaining[0])
	}
}

// TestTimeoutMiddleware_Expires verifies that a stalled call is cut off.
func TestTimeoutMiddleware_Expires(t *testing.T) {
	stall := func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := NewTimeoutMiddleware(10 * time.Millisecond)(stall)(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

// TestGrowingTimeoutMiddleware_PerAttempt verifies that each retry attempt
// gets step more time than the previous one.
func TestGrowingTimeoutMiddleware_PerAttempt(t *testing.T) {
	var remaining []time.Duration
	base := deadlineRecorder(&remaining)

	callCount := 0
	failTwice := func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		callCount++
		if _, err := base(ctx, request); err != nil {
			return nil, err
		}
		if callCount < 3 {
			return nil, &ai.StatusError{StatusCode: 500}
		}
		return &ai.ChatResponse{Content: "ok"}, nil
	}

	chain := NewRetryMiddleware(fastRetry(3))(
		NewGrowingTimeoutMiddleware(3*time.Minute, time.Minute)(failTwice),
	)

	if _, err := chain(context.Background(), ai.ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Duration{3 * time.Minute, 4 * time.Minute, 5 * time.Minute}
	if len(remaining) != len(want) {
		t.Fatalf("recorded %d deadlines, want %d", len(remaining), len(want))
	}
	for i := range want {
		if remaining[i] > want[i] || remaining[i] < want[i]-5*time.Second {
			t.Errorf("attempt %d deadline = %v, want about %v", i, remaining[i], want[i])
		}
	}
}

// TestTimeoutMiddleware_ShorterParentDeadlineWins verifies normal context
// semantics.
func TestTimeoutMiddleware_ShorterParentDeadlineWins(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var remaining []time.Duration
	if _, err := NewTimeoutMiddleware(time.Hour)(deadlineRecorder(&remaining))(ctx, ai.ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining[0] > time.Second {
		t.Errorf("remaining deadline = %v, want at most 1s", remaining[0])
	}
}
