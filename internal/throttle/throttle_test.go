package throttle

import (
	"context"
	"testing"
	"time"
)

func TestFixedDelayWaits(t *testing.T) {
	limiter := NewFixedDelay(20 * time.Millisecond)

	start := time.Now()
	if err := limiter.Wait(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected at least 20ms wait, got %v", elapsed)
	}
}

func TestFixedDelayZeroReturnsImmediately(t *testing.T) {
	limiter := NewFixedDelay(0)
	if err := limiter.Wait(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFixedDelayCancelled(t *testing.T) {
	limiter := NewFixedDelay(time.Minute)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := limiter.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestNoneNeverWaits(t *testing.T) {
	if err := (None{}).Wait(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
