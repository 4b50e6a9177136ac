package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/ports"
)

func waitForState(t *testing.T, r *Runner, id string, want ports.JobState) ports.JobInfo {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if info, ok := r.Job(id); ok && info.State == want {
			return info
		}
		time.Sleep(5 * time.Millisecond)
	}
	info, _ := r.Job(id)
	t.Fatalf("job %s never reached state %s (last: %+v)", id, want, info)
	return ports.JobInfo{}
}

func TestRunner_ExecutesJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewRunner(zerolog.Nop())
	r.Start(ctx)

	ran := make(chan struct{})
	id, err := r.Enqueue("test", func(context.Context) error {
		close(ran)
		return nil
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
	info := waitForState(t, r, id, ports.JobDone)
	if info.Error != "" {
		t.Errorf("done job carries error %q", info.Error)
	}
	if info.StartedAt.IsZero() || info.FinishedAt.IsZero() {
		t.Errorf("timestamps missing: %+v", info)
	}
}

func TestRunner_FailedJobKeepsErrorMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewRunner(zerolog.Nop())
	r.Start(ctx)

	id, err := r.Enqueue("failing", func(context.Context) error {
		return errors.New("disk full")
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	info := waitForState(t, r, id, ports.JobFailed)
	if info.Error != "disk full" {
		t.Errorf("error = %q, want disk full", info.Error)
	}
}

func TestRunner_JobsRunOneAtATime(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewRunner(zerolog.Nop())
	r.Start(ctx)

	var running atomic.Int32
	var overlapped atomic.Bool
	var lastID string
	for i := 0; i < 5; i++ {
		id, err := r.Enqueue(fmt.Sprintf("job-%d", i), func(context.Context) error {
			if running.Add(1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return nil
		})
		if err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
		lastID = id
	}

	waitForState(t, r, lastID, ports.JobDone)
	if overlapped.Load() {
		t.Fatal("jobs overlapped; the runner must execute one at a time")
	}
}

func TestRunner_FullQueueRejectsWithoutBlocking(t *testing.T) {
	// No Start: nothing drains the queue, so enqueues past the buffer
	// must fail fast instead of blocking the caller.
	r := NewRunner(zerolog.Nop())

	var lastErr error
	for i := 0; i < queueBuffer+1; i++ {
		_, lastErr = r.Enqueue("noop", func(context.Context) error { return nil })
		if lastErr != nil {
			break
		}
	}
	if !errors.Is(lastErr, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", lastErr)
	}
}

func TestRunner_JobsNewestFirst(t *testing.T) {
	r := NewRunner(zerolog.Nop())

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := r.Enqueue(fmt.Sprintf("job-%d", i), func(context.Context) error { return nil })
		if err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	jobs := r.Jobs()
	if len(jobs) != 3 {
		t.Fatalf("Jobs() = %d entries, want 3", len(jobs))
	}
	if jobs[0].ID != ids[2] || jobs[2].ID != ids[0] {
		t.Errorf("jobs not newest first: %v", jobs)
	}
}
