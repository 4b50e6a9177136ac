package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/accesscast/studio-admin/internal/core/service"
	"github.com/accesscast/studio-admin/internal/infrastructure/config"
	mongodb "github.com/accesscast/studio-admin/internal/infrastructure/db/mongo"
	"github.com/accesscast/studio-admin/internal/infrastructure/jobs"
	"github.com/accesscast/studio-admin/pkg/logger"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Run a database backup and exit",
	Long: `backup connects to MongoDB, streams every collection into one gzipped
JSON archive under BACKUP_DIR and prunes old archives down to BACKUP_KEEP.
The same code path the API's backup job runs, without the job runner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackup(cmd.Context())
	},
}

func runBackup(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	exporter := mongodb.NewCollectionExporter(db)
	backups := service.NewBackupService(exporter, jobs.NewRunner(log), cfg.Backup.Dir, cfg.Backup.Keep, log)

	result, err := backups.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d collections, %d documents, %d bytes) in %s\n",
		result.Archive.Name, result.Collections, result.Documents,
		result.Archive.SizeBytes, result.Duration.Round(10*time.Millisecond))
	return nil
}
