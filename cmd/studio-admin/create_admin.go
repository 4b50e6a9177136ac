package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
	"github.com/accesscast/studio-admin/internal/core/service"
	"github.com/accesscast/studio-admin/internal/infrastructure/config"
	mongodb "github.com/accesscast/studio-admin/internal/infrastructure/db/mongo"
	"github.com/accesscast/studio-admin/pkg/logger"
)

var (
	adminUsername    string
	adminPassword    string
	adminEmail       string
	adminDisplayName string
)

// createAdminCmd bootstraps the first admin account. The register endpoint
// is admin-gated, so a fresh deployment needs this out-of-band path once.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd.Context())
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "username for the new admin (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password for the new admin (required)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email address")
	createAdminCmd.Flags().StringVar(&adminDisplayName, "display-name", "", "display name")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
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

	authRepo := mongodb.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	user, err := authService.Register(ctx, ports.RegisterInput{
		Username:    adminUsername,
		Password:    adminPassword,
		Email:       adminEmail,
		DisplayName: adminDisplayName,
		Role:        string(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}

	fmt.Printf("created admin user %s (%s)\n", user.Username, user.ID)
	return nil
}
