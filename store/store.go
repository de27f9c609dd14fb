package store

import (
	"context"
	"errors"
	"strings"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/schema"
)

// ErrNotFound is returned when a requested document or schema does not
// exist. Callers treat it as an empty result, not a failure.
var ErrNotFound = errors.New("not found")

// DocumentStore is the document persistence collaborator: arbitrary typed
// fields keyed by (collection, id).
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (*document.Document, error)
	List(ctx context.Context, collection string, limit int) ([]*document.Document, error)
	// Sample returns the oldest document of a collection, used as the
	// specimen for schema inference. ErrNotFound when the collection is empty.
	Sample(ctx context.Context, collection string) (*document.Document, error)
	// Put upserts the document and returns its id, assigning one when absent.
	Put(ctx context.Context, collection string, doc *document.Document) (string, error)
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int64, error)
}

// SchemaStore is the schema persistence collaborator. Definitions live in a
// reserved namespace of the same store and are keyed by collection name.
type SchemaStore interface {
	Get(ctx context.Context, collection string) (schema.Definition, error)
	// Put overwrites unconditionally; concurrent writers race and the last
	// write wins. That gap is deliberate: no version counter exists.
	Put(ctx context.Context, collection, source, icon string) error
	// List enumerates user-facing collection names, the union of saved
	// schemas and existing document namespaces, excluding reserved ones.
	List(ctx context.Context) ([]string, error)
}

// reservedPrefix marks collections used for internal bookkeeping.
const reservedPrefix = "_"

// IsReserved reports whether a collection name belongs to curator itself.
func IsReserved(name string) bool {
	return strings.HasPrefix(name, reservedPrefix)
}

// ValidCollectionName reports whether name is safe to use as a user-facing
// collection: short, alphanumeric/underscore/hyphen, not starting with a
// digit, and outside the reserved namespace.
func ValidCollectionName(name string) bool {
	if name == "" || len(name) > 63 || IsReserved(name) {
		return false
	}
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '_' || char == '-') {
			return false
		}
	}
	if name[0] >= '0' && name[0] <= '9' {
		return false
	}
	return true
}
