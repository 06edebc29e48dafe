package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunAll_CollectsEveryResult(t *testing.T) {
	var ran atomic.Int64
	tasks := make([]Task, 0, 20)
	for i := 0; i < 20; i++ {
		i := i
		tasks = append(tasks, Task{
			Key: fmt.Sprintf("t%d", i),
			Run: func(context.Context) error {
				ran.Add(1)
				if i%5 == 0 {
					return errors.New("fail")
				}
				return nil
			},
		})
	}

	results := RunAll(context.Background(), 4, tasks)
	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}
	if ran.Load() != 20 {
		t.Fatalf("expected 20 runs, got %d", ran.Load())
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed != 4 {
		t.Fatalf("expected 4 failures, got %d", failed)
	}
}

func TestRunAll_BoundedConcurrency(t *testing.T) {
	var active, peak atomic.Int64
	tasks := make([]Task, 0, 12)
	for i := 0; i < 12; i++ {
		tasks = append(tasks, Task{Key: fmt.Sprint(i), Run: func(context.Context) error {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			return nil
		}})
	}

	RunAll(context.Background(), 3, tasks)
	if peak.Load() > 3 {
		t.Fatalf("expected at most 3 concurrent tasks, saw %d", peak.Load())
	}
}

func TestRunAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{{Key: "a", Run: func(context.Context) error { return nil }}}
	done := make(chan struct{})
	go func() {
		RunAll(ctx, 2, tasks)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("RunAll did not return after cancellation")
	}
}
