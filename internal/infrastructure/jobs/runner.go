// Package jobs provides a single-worker background job runner. Jobs are
// executed strictly one at a time in enqueue order, so long-running work
// like database backups never overlaps.
package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/ports"
)

const (
	queueBuffer = 16
	// historyLimit bounds the in-memory job log.
	historyLimit = 50
)

var ErrQueueFull = errors.New("job queue is full")

type job struct {
	id   string
	name string
	fn   func(ctx context.Context) error
}

// Runner executes enqueued jobs on one worker goroutine and keeps a bounded
// in-memory history of their states.
type Runner struct {
	queue chan job
	log   zerolog.Logger

	mu   sync.Mutex
	jobs map[string]*ports.JobInfo
}

func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{
		queue: make(chan job, queueBuffer),
		log:   log,
		jobs:  make(map[string]*ports.JobInfo),
	}
}

// Start launches the worker goroutine. The worker stops when ctx is
// cancelled; a job already running finishes with the cancelled context.
func (r *Runner) Start(ctx context.Context) {
	go r.run(ctx)
}

// Enqueue adds a job to the queue and returns its id. The call never blocks:
// a full queue returns ErrQueueFull instead.
func (r *Runner) Enqueue(name string, fn func(ctx context.Context) error) (string, error) {
	j := job{id: uuid.NewString(), name: name, fn: fn}

	r.mu.Lock()
	r.jobs[j.id] = &ports.JobInfo{
		ID:         j.id,
		Name:       name,
		State:      ports.JobQueued,
		EnqueuedAt: time.Now().UTC(),
	}
	r.trimHistory()
	r.mu.Unlock()

	select {
	case r.queue <- j:
		return j.id, nil
	default:
		r.mu.Lock()
		delete(r.jobs, j.id)
		r.mu.Unlock()
		return "", ErrQueueFull
	}
}

// Job returns the status of one job.
func (r *Runner) Job(id string) (ports.JobInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.jobs[id]
	if !ok {
		return ports.JobInfo{}, false
	}
	return *info, true
}

// Jobs returns every tracked job, newest first.
func (r *Runner) Jobs() []ports.JobInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.JobInfo, 0, len(r.jobs))
	for _, info := range r.jobs {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnqueuedAt.After(out[j].EnqueuedAt) })
	return out
}

func (r *Runner) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-r.queue:
			if !ok {
				return
			}
			r.execute(ctx, j)
		}
	}
}

func (r *Runner) execute(ctx context.Context, j job) {
	r.setState(j.id, func(info *ports.JobInfo) {
		info.State = ports.JobRunning
		info.StartedAt = time.Now().UTC()
	})

	err := j.fn(ctx)

	r.setState(j.id, func(info *ports.JobInfo) {
		info.FinishedAt = time.Now().UTC()
		if err != nil {
			info.State = ports.JobFailed
			info.Error = err.Error()
		} else {
			info.State = ports.JobDone
		}
	})

	if err != nil {
		r.log.Error().Err(err).Str("job_id", j.id).Str("job", j.name).Msg("job failed")
	} else {
		r.log.Info().Str("job_id", j.id).Str("job", j.name).Msg("job finished")
	}
}

func (r *Runner) setState(id string, update func(*ports.JobInfo)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.jobs[id]; ok {
		update(info)
	}
}

// trimHistory drops the oldest finished jobs beyond historyLimit. Must be
// called with r.mu held.
func (r *Runner) trimHistory() {
	if len(r.jobs) <= historyLimit {
		return
	}
	type aged struct {
		id string
		at time.Time
	}
	var finished []aged
	for id, info := range r.jobs {
		if info.State == ports.JobDone || info.State == ports.JobFailed {
			finished = append(finished, aged{id: id, at: info.EnqueuedAt})
		}
	}
	sort.Slice(finished, func(i, j int) bool { return finished[i].at.Before(finished[j].at) })
	for _, f := range finished {
		if len(r.jobs) <= historyLimit {
			break
		}
		delete(r.jobs, f.id)
	}
}
