package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdrahmanz/curator/schema"
)

// schemaNamespace is the reserved collection holding schema definitions,
// keyed by the user-facing collection name.
const schemaNamespace = "_schemas"

// schemaFields is the jsonb payload of a schema document.
type schemaFields struct {
	Definition string `json:"definition"`
	Icon       string `json:"icon"`
}

// Schemas persists schema definitions in the documents table under the
// reserved namespace. Writes are unconditional upserts: two simultaneous
// saves race and the last one wins, whole-row, never a merge.
type Schemas struct {
	pool *pgxpool.Pool
}

func NewSchemas(pool *pgxpool.Pool) *Schemas {
	return &Schemas{pool: pool}
}

func (s *Schemas) Get(ctx context.Context, collection string) (schema.Definition, error) {
	var fields []byte
	var updatedAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT fields, updated_at FROM `+documentsTable+`
		 WHERE collection = $1 AND id = $2`,
		schemaNamespace, collection,
	).Scan(&fields, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return schema.Definition{}, ErrNotFound
	}
	if err != nil {
		return schema.Definition{}, fmt.Errorf("querying schema for %s: %w", collection, err)
	}

	var payload schemaFields
	if err := json.Unmarshal(fields, &payload); err != nil {
		return schema.Definition{}, fmt.Errorf("decoding schema for %s: %w", collection, err)
	}

	def := schema.ParseSource(payload.Definition)
	def.Collection = collection
	def.Icon = payload.Icon
	def.UpdatedAt = updatedAt
	return def, nil
}

func (s *Schemas) Put(ctx context.Context, collection, source, icon string) error {
	fields, err := json.Marshal(schemaFields{Definition: source, Icon: icon})
	if err != nil {
		return fmt.Errorf("encoding schema for %s: %w", collection, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+documentsTable+` (collection, id, fields)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id)
		 DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()`,
		schemaNamespace, collection, fields,
	)
	if err != nil {
		return fmt.Errorf("writing schema for %s: %w", collection, err)
	}
	return nil
}

func (s *Schemas) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
	SELECT name FROM (
		SELECT DISTINCT collection AS name FROM `+documentsTable+`
		WHERE left(collection, 1) <> '_'
		UNION
		SELECT id AS name FROM `+documentsTable+`
		WHERE collection = $1 AND left(id, 1) <> '_'
	) names
	ORDER BY name`, schemaNamespace)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection name: %w", err)
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating collection rows: %w", rows.Err())
	}
	return names, nil
}
