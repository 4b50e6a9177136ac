package ports

import (
	"context"
	"io"
	"time"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// CollectionExporter streams raw documents out of the durable store. The
// Mongo implementation walks each collection with a cursor so archives never
// hold a full collection in memory.
type CollectionExporter interface {
	ListCollections(ctx context.Context) ([]string, error)
	// ExportCollection writes every document of the named collection to w as
	// newline-delimited JSON and returns the document count.
	ExportCollection(ctx context.Context, name string, w io.Writer) (int64, error)
}

// JobState is the lifecycle of one queued job.
type JobState string

const (
	JobQueued  JobState = "queued"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// JobInfo is the queryable status of one job.
type JobInfo struct {
	ID         string
	Name       string
	State      JobState
	EnqueuedAt time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// JobRunner serialises background jobs on a single worker so backups never
// overlap.
type JobRunner interface {
	Enqueue(name string, fn func(ctx context.Context) error) (string, error)
	Job(id string) (JobInfo, bool)
	Jobs() []JobInfo
}

// BackupResult summarises one finished backup run.
type BackupResult struct {
	Archive     domain.BackupArchive
	Collections int
	Documents   int64
	Duration    time.Duration
}

// BackupService creates and lists database backup archives.
type BackupService interface {
	// Trigger enqueues a backup on the job runner and returns the job id.
	Trigger(ctx context.Context) (string, error)
	// Run performs one backup synchronously (the CLI path).
	Run(ctx context.Context) (*BackupResult, error)
	// List returns archives on disk, newest first, plus recent job states.
	List(ctx context.Context) ([]domain.BackupArchive, []JobInfo, error)
}
