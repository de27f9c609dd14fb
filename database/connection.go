package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// Open returns a singleton connection pool for the application. The
// connection string comes from the resolved config, never from ambient
// environment reads down here.
func Open(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		if connStr == "" {
			poolErr = fmt.Errorf("DATABASE_URL not set in environment")
			return
		}

		pool, poolErr = pgxpool.New(ctx, connStr)
		if poolErr != nil {
			poolErr = fmt.Errorf("unable to create connection pool: %v", poolErr)
			return
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			pool = nil
			poolErr = fmt.Errorf("unable to ping database: %v", err)
			return
		}
	})

	return pool, poolErr
}

// Close closes the connection pool (should be called on application shutdown)
func Close() {
	if pool != nil {
		pool.Close()
	}
}
