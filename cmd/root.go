package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/config"
	"github.com/mdrahmanz/curator/database"
)

var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "Admin studio and headless CMS for document collections",
	Long: `curator manages document collections stored in Postgres: schemas,
documents, users, files, analytics, and an embedded web studio.

Examples:

  curator init
  curator serve
  curator schema infer posts
  curator docs list posts
`,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// openDatabase resolves config and opens the shared pool. Commands that need
// the database call this and exit on failure.
func openDatabase(ctx context.Context) (config.Config, *pgxpool.Pool, error) {
	cfg := config.Load()
	pool, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return cfg, nil, fmt.Errorf("connecting to database: %w", err)
	}
	return cfg, pool, nil
}
