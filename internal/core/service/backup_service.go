package service

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/api/metrics"
	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

const archivePrefix = "studio-backup-"

// BackupService writes gzipped JSON archives of the whole database. Archives
// are plain files under the backup directory; the newest keep archives
// survive pruning.
type BackupService struct {
	exporter ports.CollectionExporter
	runner   ports.JobRunner
	dir      string
	keep     int
	logger   zerolog.Logger

	// triggerMu makes the in-progress check and the enqueue one step, so
	// concurrent triggers cannot both slip past the check.
	triggerMu sync.Mutex
}

func NewBackupService(exporter ports.CollectionExporter, runner ports.JobRunner, dir string, keep int, logger zerolog.Logger) *BackupService {
	if keep <= 0 {
		keep = 5
	}
	return &BackupService{
		exporter: exporter,
		runner:   runner,
		dir:      dir,
		keep:     keep,
		logger:   logger,
	}
}

// Trigger enqueues a backup on the job runner and returns the job id. A
// backup already queued or running rejects the request; the runner is a
// single worker, so accepted jobs never overlap.
func (s *BackupService) Trigger(ctx context.Context) (string, error) {
	s.triggerMu.Lock()
	defer s.triggerMu.Unlock()

	for _, job := range s.runner.Jobs() {
		if job.Name == "backup" && (job.State == ports.JobQueued || job.State == ports.JobRunning) {
			return "", domain.ErrBackupInProgress
		}
	}

	return s.runner.Enqueue("backup", func(jobCtx context.Context) error {
		_, err := s.Run(jobCtx)
		return err
	})
}

// Run performs one backup synchronously: every collection is streamed through
// the exporter into a single gzipped NDJSON archive, then old archives are
// pruned. Each collection starts with a marker line so a restore tool can
// split the stream.
func (s *BackupService) Run(ctx context.Context) (*ports.BackupResult, error) {
	started := time.Now().UTC()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("backup: create dir: %w", err)
	}

	name := archivePrefix + started.Format("20060102-150405") + ".json.gz"
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("backup: create archive: %w", err)
	}

	gz := gzip.NewWriter(f)

	collections, err := s.exporter.ListCollections(ctx)
	if err != nil {
		_ = gz.Close()
		_ = f.Close()
		_ = os.Remove(path)
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("backup: list collections: %w", err)
	}

	var documents int64
	for _, coll := range collections {
		if _, err := fmt.Fprintf(gz, "{\"collection\":%q}\n", coll); err != nil {
			_ = gz.Close()
			_ = f.Close()
			_ = os.Remove(path)
			metrics.BackupRunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("backup: write marker: %w", err)
		}
		n, err := s.exporter.ExportCollection(ctx, coll, gz)
		if err != nil {
			_ = gz.Close()
			_ = f.Close()
			_ = os.Remove(path)
			metrics.BackupRunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("backup: export %s: %w", coll, err)
		}
		documents += n
	}

	if err := gz.Close(); err != nil {
		_ = f.Close()
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("backup: close archive: %w", err)
	}
	if err := f.Close(); err != nil {
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("backup: close archive: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("backup: stat archive: %w", err)
	}

	s.prune()

	finished := time.Now().UTC()
	metrics.BackupRunsTotal.WithLabelValues("ok").Inc()
	metrics.BackupLastSuccessTimestamp.Set(float64(finished.Unix()))
	metrics.BackupLastArchiveBytes.Set(float64(info.Size()))

	s.logger.Info().
		Str("archive", name).
		Int("collections", len(collections)).
		Int64("documents", documents).
		Int64("size_bytes", info.Size()).
		Dur("duration", finished.Sub(started)).
		Msg("backup completed")

	return &ports.BackupResult{
		Archive: domain.BackupArchive{
			Name:      name,
			SizeBytes: info.Size(),
			CreatedAt: started,
		},
		Collections: len(collections),
		Documents:   documents,
		Duration:    finished.Sub(started),
	}, nil
}

// List returns archives on disk, newest first, plus recent job states.
func (s *BackupService) List(ctx context.Context) ([]domain.BackupArchive, []ports.JobInfo, error) {
	archives, err := s.archives()
	if err != nil {
		return nil, nil, err
	}
	var jobs []ports.JobInfo
	if s.runner != nil {
		jobs = s.runner.Jobs()
	}
	return archives, jobs, nil
}

func (s *BackupService) archives() ([]domain.BackupArchive, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("backup: read dir: %w", err)
	}

	var out []domain.BackupArchive
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), archivePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.BackupArchive{
			Name:      e.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// prune removes everything beyond the keep newest archives. Failures only
// log: a leftover archive is better than a failed backup.
func (s *BackupService) prune() {
	archives, err := s.archives()
	if err != nil {
		s.logger.Warn().Err(err).Msg("backup prune: listing failed")
		return
	}
	for _, old := range archives[min(s.keep, len(archives)):] {
		if err := os.Remove(filepath.Join(s.dir, old.Name)); err != nil {
			s.logger.Warn().Err(err).Str("archive", old.Name).Msg("backup prune: remove failed")
		} else {
			s.logger.Debug().Str("archive", old.Name).Msg("old backup pruned")
		}
	}
}
