package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity",
	Long: `Check if the database is accessible and the curator tables exist.

Examples:
  curator health                    # Check default database connection
  curator health --timeout 10s      # Set custom timeout
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkHealth(); err != nil {
			fmt.Printf("❌ Health check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Database is healthy and accessible")
	},
}

var healthTimeout time.Duration

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
}

func checkHealth() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	_, pool, err := openDatabase(ctx)
	if err != nil {
		return err
	}

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	var tableExists bool
	query := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_name = 'curator_documents'
	)`
	if err := pool.QueryRow(ctx, query).Scan(&tableExists); err != nil {
		return fmt.Errorf("failed to check curator_documents table: %v", err)
	}

	if !tableExists {
		fmt.Println("⚠️  Database is accessible but curator_documents table not found")
		fmt.Println("   Run 'curator init' to set up the tables")
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM curator_documents").Scan(&count); err != nil {
		return fmt.Errorf("failed to count documents: %v", err)
	}
	fmt.Printf("📊 Found %d stored documents\n", count)

	return nil
}
