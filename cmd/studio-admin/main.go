package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studio-admin",
	Short: "AccessCast studio admin API server and tooling",
	Long: `studio-admin runs the admin dashboard API for accessibility media
production: movies, distributors, the production roster, media assets,
guidelines, the kanban board and per-user dashboard layouts.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, backupCmd, createAdminCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
