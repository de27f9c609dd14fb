package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything curator reads from the environment. It is
// resolved once at startup and passed down; nothing deeper in the call tree
// reads the environment on its own.
type Config struct {
	DatabaseURL   string
	SessionSecret string
	BlobDir       string
	SignedURLKey  string

	GeminiAPIKey string
	GeminiModel  string

	GAPropertyID  string
	GAAccessToken string
	GAEndpoint    string
}

// Load reads .env (when present) and the environment into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️  No .env file found, continuing...")
	}

	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		BlobDir:       os.Getenv("BLOB_DIR"),
		SignedURLKey:  os.Getenv("SIGNED_URL_KEY"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GAPropertyID:  os.Getenv("GA_PROPERTY_ID"),
		GAAccessToken: os.Getenv("GA_ACCESS_TOKEN"),
		GAEndpoint:    os.Getenv("GA_ENDPOINT"),
	}
	if cfg.BlobDir == "" {
		cfg.BlobDir = "blobs"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.SignedURLKey == "" {
		cfg.SignedURLKey = cfg.SessionSecret
	}
	return cfg
}

// DatabaseConfigured reports whether live mode has a backing store to talk to.
func (c Config) DatabaseConfigured() bool { return c.DatabaseURL != "" }

// AIConfigured reports whether the generative assistants can run.
func (c Config) AIConfigured() bool { return c.GeminiAPIKey != "" }

// AnalyticsConfigured reports whether real analytics reports can run;
// otherwise the demo dataset is served.
func (c Config) AnalyticsConfigured() bool {
	return c.GAPropertyID != "" && c.GAAccessToken != ""
}
