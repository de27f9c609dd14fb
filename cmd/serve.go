package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mdrahmanz/curator/ai"
	"github.com/mdrahmanz/curator/analytics"
	"github.com/mdrahmanz/curator/blob"
	"github.com/mdrahmanz/curator/config"
	"github.com/mdrahmanz/curator/database"
	"github.com/mdrahmanz/curator/identity"
	"github.com/mdrahmanz/curator/server"
	"github.com/mdrahmanz/curator/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the Curator web studio",
	Long: `Launch Curator Studio - a web interface for browsing and editing your
document collections.

From the studio you can:
- Browse collections and documents
- Create and edit documents through schema-driven forms
- Edit collection schemas
- Manage files, users, and view analytics

The interface will be available at http://localhost:8080 by default.
Without a DATABASE_URL the studio runs in demo mode on sample data.`,
	Run: func(cmd *cobra.Command, args []string) {
		port := viper.GetString("serve.port")
		if port == "" {
			port = "8080"
		}

		fmt.Printf("🚀 Starting Curator Studio on http://localhost:%s\n", port)
		fmt.Println("Press Ctrl+C to stop the server")

		if err := startStudio(port); err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "8080", "Port to run the web server on")
	_ = viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
}

func startStudio(port string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	ctx := context.Background()

	var live *server.Backend
	var users *identity.Users
	if cfg.DatabaseConfigured() {
		pool, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := store.Bootstrap(ctx, pool); err != nil {
			return err
		}
		if err := identity.Bootstrap(ctx, pool); err != nil {
			return err
		}

		live = &server.Backend{
			Docs:    store.NewDocuments(pool),
			Schemas: store.NewSchemas(pool),
			Reports: analytics.NewGA4(cfg.GAAccessToken, cfg.GAEndpoint),
		}
		users = identity.NewUsers(pool)
	} else {
		fmt.Println("⚠️  No DATABASE_URL set, running in demo mode only")
	}

	assistant, err := ai.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil && !errors.Is(err, ai.ErrNotConfigured) {
		return err
	}

	blobs := blob.NewStore(cfg.BlobDir, cfg.SignedURLKey)
	srv := server.New(log, cfg, live, users, blobs, assistant)

	return http.ListenAndServe(":"+port, srv.Routes())
}
