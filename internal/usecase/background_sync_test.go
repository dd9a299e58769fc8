package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func collect(t *testing.T, events <-chan SyncEvent, n int) []SyncEvent {
	t.Helper()
	out := make([]SyncEvent, 0, n)
	deadline := time.After(5 * time.Second)
	for len(out) < n {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func TestBackgroundSync(t *testing.T) {
	t.Run("runs tasks and reports outcome", func(t *testing.T) {
		b := NewBackgroundSync(2, 8, time.Second)
		defer b.Close()
		events, cancel := b.Subscribe(16)
		defer cancel()

		if err := b.Submit(SyncTask{Name: "ok", Run: func(context.Context) error { return nil }}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := b.Submit(SyncTask{Name: "bad", Run: func(context.Context) error { return errors.New("boom") }}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := map[string]SyncStatus{}
		for _, ev := range collect(t, events, 4) {
			if ev.Status != SyncQueued {
				got[ev.Task] = ev.Status
			}
			if ev.At.IsZero() {
				t.Fatalf("event without timestamp")
			}
		}
		if got["ok"] != SyncSucceeded || got["bad"] != SyncFailed {
			t.Fatalf("unexpected outcomes %v", got)
		}
	})

	t.Run("full queue drops instead of blocking", func(t *testing.T) {
		b := NewBackgroundSync(1, 1, time.Second)
		events, cancel := b.Subscribe(16)
		defer cancel()

		release := make(chan struct{})
		started := make(chan struct{})
		b.Submit(SyncTask{Name: "slow", Run: func(context.Context) error {
			close(started)
			<-release
			return nil
		}})
		<-started
		b.Submit(SyncTask{Name: "queued", Run: func(context.Context) error { return nil }})
		b.Submit(SyncTask{Name: "dropped", Run: func(context.Context) error { return nil }})

		var dropped bool
		for _, ev := range collect(t, events, 3) {
			if ev.Task == "dropped" && ev.Status == SyncDropped {
				dropped = true
			}
		}
		if !dropped {
			t.Fatalf("expected dropped event")
		}
		close(release)
		b.Close()
	})

	t.Run("close drains queued tasks", func(t *testing.T) {
		b := NewBackgroundSync(1, 8, time.Second)
		var ran atomic.Int32
		for i := 0; i < 5; i++ {
			b.Submit(SyncTask{Name: "t", Run: func(context.Context) error {
				ran.Add(1)
				return nil
			}})
		}
		b.Close()
		if ran.Load() != 5 {
			t.Fatalf("expected 5 tasks to run, got %d", ran.Load())
		}
		if err := b.Submit(SyncTask{Name: "late"}); !errors.Is(err, ErrSyncClosed) {
			t.Fatalf("expected ErrSyncClosed, got %v", err)
		}
		events, _ := b.Subscribe(1)
		if _, ok := <-events; ok {
			t.Fatalf("subscription after close must be closed")
		}
	})

	t.Run("task context carries the timeout", func(t *testing.T) {
		b := NewBackgroundSync(1, 1, 10*time.Millisecond)
		done := make(chan error, 1)
		b.Submit(SyncTask{Name: "wait", Run: func(ctx context.Context) error {
			<-ctx.Done()
			done <- ctx.Err()
			return ctx.Err()
		}})
		b.Close()
		if err := <-done; !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline, got %v", err)
		}
	})
}
