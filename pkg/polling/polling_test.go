package polling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lucasclyra-cmd/normative/pkg/polling"
)

func TestWaitImmediateCompletion(t *testing.T) {
	start := time.Now()
	got, err := polling.Wait(context.Background(), time.Hour, func(ctx context.Context) (string, bool, error) {
		return "done", true, nil
	})
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if got != "done" {
		t.Errorf("result = %q, want done", got)
	}
	if time.Since(start) > time.Second {
		t.Error("immediate completion should not wait for the interval")
	}
}

func TestWaitConvergesAfterPolls(t *testing.T) {
	checks := 0
	got, err := polling.Wait(context.Background(), time.Millisecond, func(ctx context.Context) (int, bool, error) {
		checks++
		return checks, checks >= 3, nil
	})
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if got != 3 {
		t.Errorf("result = %d, want 3", got)
	}
}

func TestWaitPropagatesCheckError(t *testing.T) {
	boom := errors.New("boom")
	_, err := polling.Wait(context.Background(), time.Millisecond, func(ctx context.Context) (int, bool, error) {
		return 0, false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestWaitCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := polling.Wait(ctx, time.Hour, func(ctx context.Context) (int, bool, error) {
		return 0, false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestWaitDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := polling.Wait(ctx, time.Hour, func(ctx context.Context) (int, bool, error) {
		return 0, false, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}
