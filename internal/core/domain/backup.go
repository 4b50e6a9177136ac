package domain

import (
	"errors"
	"time"
)

var ErrBackupInProgress = errors.New("a backup is already running")

// BackupArchive describes one backup file on disk.
type BackupArchive struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
