package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdrahmanz/curator/document"
)

const documentsTable = "curator_documents"

// Documents stores documents as jsonb rows in Postgres, one row per
// (collection, id). Field order inside the jsonb payload is the declaration
// order of the document.
type Documents struct {
	pool *pgxpool.Pool
}

func NewDocuments(pool *pgxpool.Pool) *Documents {
	return &Documents{pool: pool}
}

// Bootstrap creates the backing table. Safe to run repeatedly.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS `+documentsTable+` (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		fields JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, id)
	);`)
	if err != nil {
		return fmt.Errorf("creating %s table: %w", documentsTable, err)
	}
	return nil
}

func (d *Documents) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	var fields []byte
	err := d.pool.QueryRow(ctx,
		`SELECT fields FROM `+documentsTable+` WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&fields)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying document %s/%s: %w", collection, id, err)
	}
	doc, err := document.DecodeFields(id, fields)
	if err != nil {
		return nil, fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (d *Documents) List(ctx context.Context, collection string, limit int) ([]*document.Document, error) {
	if limit < 1 || limit > 1000 {
		limit = 50
	}
	rows, err := d.pool.Query(ctx,
		`SELECT id, fields FROM `+documentsTable+`
		 WHERE collection = $1 ORDER BY created_at DESC LIMIT $2`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents in %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		var id string
		var fields []byte
		if err := rows.Scan(&id, &fields); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		doc, err := document.DecodeFields(id, fields)
		if err != nil {
			return nil, fmt.Errorf("decoding document %s/%s: %w", collection, id, err)
		}
		docs = append(docs, doc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating document rows: %w", rows.Err())
	}
	return docs, nil
}

func (d *Documents) Sample(ctx context.Context, collection string) (*document.Document, error) {
	var id string
	var fields []byte
	err := d.pool.QueryRow(ctx,
		`SELECT id, fields FROM `+documentsTable+`
		 WHERE collection = $1 ORDER BY created_at ASC LIMIT 1`,
		collection,
	).Scan(&id, &fields)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sampling collection %s: %w", collection, err)
	}
	doc, err := document.DecodeFields(id, fields)
	if err != nil {
		return nil, fmt.Errorf("decoding sample %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (d *Documents) Put(ctx context.Context, collection string, doc *document.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	fields, err := doc.EncodeFields()
	if err != nil {
		return "", fmt.Errorf("encoding document fields: %w", err)
	}
	_, err = d.pool.Exec(ctx,
		`INSERT INTO `+documentsTable+` (collection, id, fields)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id)
		 DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()`,
		collection, doc.ID, fields,
	)
	if err != nil {
		return "", fmt.Errorf("writing document %s/%s: %w", collection, doc.ID, err)
	}
	return doc.ID, nil
}

// Delete is idempotent: deleting an absent document is not an error.
func (d *Documents) Delete(ctx context.Context, collection, id string) error {
	_, err := d.pool.Exec(ctx,
		`DELETE FROM `+documentsTable+` WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (d *Documents) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+documentsTable+` WHERE collection = $1`,
		collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents in %s: %w", collection, err)
	}
	return count, nil
}
