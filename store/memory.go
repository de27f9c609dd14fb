package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/schema"
)

// Memory is an in-process store backing demo mode. It implements both the
// document and schema collaborators; writes land in memory and vanish on
// restart, which is the point.
type Memory struct {
	mu      sync.RWMutex
	docs    map[string]map[string]*document.Document
	order   map[string][]string // insertion order per collection
	schemas map[string]memSchema
}

type memSchema struct {
	source    string
	icon      string
	updatedAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		docs:    make(map[string]map[string]*document.Document),
		order:   make(map[string][]string),
		schemas: make(map[string]memSchema),
	}
}

func (m *Memory) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (m *Memory) List(ctx context.Context, collection string, limit int) ([]*document.Document, error) {
	if limit < 1 || limit > 1000 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.order[collection]
	docs := make([]*document.Document, 0, len(ids))
	// newest first, like the live store
	for i := len(ids) - 1; i >= 0 && len(docs) < limit; i-- {
		if doc, ok := m.docs[collection][ids[i]]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *Memory) Sample(ctx context.Context, collection string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order[collection] {
		if doc, ok := m.docs[collection][id]; ok {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Put(ctx context.Context, collection string, doc *document.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]*document.Document)
	}
	if _, exists := m.docs[collection][doc.ID]; !exists {
		m.order[collection] = append(m.order[collection], doc.ID)
	}
	m.docs[collection][doc.ID] = doc
	return doc.ID, nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs[collection], id)
	return nil
}

func (m *Memory) Count(ctx context.Context, collection string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs[collection])), nil
}

func (m *Memory) GetSchema(ctx context.Context, collection string) (schema.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemas[collection]
	if !ok {
		return schema.Definition{}, ErrNotFound
	}
	def := schema.ParseSource(s.source)
	def.Collection = collection
	def.Icon = s.icon
	def.UpdatedAt = s.updatedAt
	return def, nil
}

func (m *Memory) PutSchema(ctx context.Context, collection, source, icon string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemas[collection] = memSchema{source: source, icon: icon, updatedAt: time.Now()}
	return nil
}

func (m *Memory) ListCollections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	for name := range m.docs {
		if !IsReserved(name) && len(m.docs[name]) > 0 {
			seen[name] = true
		}
	}
	for name := range m.schemas {
		if !IsReserved(name) {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// MemorySchemas adapts a Memory to the SchemaStore interface.
type MemorySchemas struct {
	*Memory
}

func (m MemorySchemas) Get(ctx context.Context, collection string) (schema.Definition, error) {
	return m.GetSchema(ctx, collection)
}

func (m MemorySchemas) Put(ctx context.Context, collection, source, icon string) error {
	return m.PutSchema(ctx, collection, source, icon)
}

func (m MemorySchemas) List(ctx context.Context) ([]string, error) {
	return m.ListCollections(ctx)
}

// SeedDemo builds the fixed dataset served in demo mode.
func SeedDemo() *Memory {
	m := NewMemory()
	ctx := context.Background()

	posts := []*document.Document{
		demoDoc("post-1", [][2]interface{}{
			{"title", "Launching the new portfolio"},
			{"content", "After months of tinkering the new site is live.\nExpect writing about Go, infrastructure, and the occasional side project."},
			{"publishedAt", document.Time(time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC))},
			{"featured", true},
			{"views", float64(1204)},
		}),
		demoDoc("post-2", [][2]interface{}{
			{"title", "Notes on schema inference"},
			{"content", "Guessing field types from a single sample document is crude but surprisingly effective for admin forms."},
			{"publishedAt", document.Time(time.Date(2024, 5, 18, 14, 0, 0, 0, time.UTC))},
			{"featured", false},
			{"views", float64(356)},
		}),
	}
	for _, doc := range posts {
		_, _ = m.Put(ctx, "posts", doc)
	}

	projects := []*document.Document{
		demoDoc("project-1", [][2]interface{}{
			{"name", "curator"},
			{"description", "Admin studio and headless CMS backend for document collections."},
			{"url", "https://example.com/curator"},
			{"stars", float64(87)},
		}),
	}
	for _, doc := range projects {
		_, _ = m.Put(ctx, "projects", doc)
	}

	_ = m.PutSchema(ctx, "posts", schema.Definition{
		Collection: "posts",
		Fields: []schema.FieldDef{
			{Name: "title", Type: schema.FieldString},
			{Name: "content", Type: schema.FieldString},
			{Name: "publishedAt", Type: schema.FieldTimestamp},
			{Name: "featured", Type: schema.FieldBoolean},
			{Name: "views", Type: schema.FieldNumber},
		},
	}.Source(), "📝")

	return m
}

func demoDoc(id string, fields [][2]interface{}) *document.Document {
	doc := document.New(id)
	for _, kv := range fields {
		name := kv[0].(string)
		switch v := kv[1].(type) {
		case string:
			doc.Set(name, document.String(v))
		case float64:
			doc.Set(name, document.Number(v))
		case bool:
			doc.Set(name, document.Bool(v))
		case document.Value:
			doc.Set(name, v)
		}
	}
	return doc
}
