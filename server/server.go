package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mdrahmanz/curator/ai"
	"github.com/mdrahmanz/curator/analytics"
	"github.com/mdrahmanz/curator/blob"
	"github.com/mdrahmanz/curator/config"
	"github.com/mdrahmanz/curator/identity"
	"github.com/mdrahmanz/curator/store"
)

// Backend bundles the store interfaces one request mode reads and writes.
type Backend struct {
	Docs    store.DocumentStore
	Schemas store.SchemaStore
	Reports analytics.Reporter
}

// Server is the studio: HTML pages plus a small JSON API, all reading
// through a per-request Backend so demo and live mode share every handler.
type Server struct {
	log      *zap.Logger
	cfg      config.Config
	live     *Backend // nil when no database is configured
	demo     Backend
	users    *identity.Users // nil when no database is configured
	sessions *identity.Sessions
	blobs    *blob.Store
	assist   *ai.Assistant // nil when no API key is configured
}

func New(log *zap.Logger, cfg config.Config, live *Backend, users *identity.Users, blobs *blob.Store, assist *ai.Assistant) *Server {
	mem := store.SeedDemo()
	return &Server{
		log:  log,
		cfg:  cfg,
		live: live,
		demo: Backend{
			Docs:    mem,
			Schemas: store.MemorySchemas{Memory: mem},
			Reports: analytics.Demo{},
		},
		users:    users,
		sessions: identity.NewSessions(cfg.SessionSecret),
		blobs:    blobs,
		assist:   assist,
	}
}

// Routes builds the full handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /c/{name}", s.handleCollection)
	mux.HandleFunc("GET /c/{name}/new", s.handleNewDocument)
	mux.HandleFunc("POST /c/{name}", s.handleCreateDocument)
	mux.HandleFunc("GET /c/{name}/{id}/edit", s.handleEditDocument)
	mux.HandleFunc("POST /c/{name}/{id}", s.handleUpdateDocument)
	mux.HandleFunc("POST /c/{name}/{id}/delete", s.handleDeleteDocument)
	mux.HandleFunc("GET /c/{name}/schema", s.handleSchemaPage)
	mux.HandleFunc("POST /c/{name}/schema", s.handleSchemaSave)

	mux.HandleFunc("GET /files", s.handleFiles)
	mux.HandleFunc("POST /files/upload", s.handleFileUpload)
	mux.HandleFunc("POST /files/delete", s.handleFileDelete)
	mux.HandleFunc("GET /dl", s.handleDownload)

	mux.HandleFunc("GET /users", s.handleUsers)
	mux.HandleFunc("POST /users/create", s.handleUserCreate)
	mux.HandleFunc("POST /users/role", s.handleUserRole)
	mux.HandleFunc("POST /users/disable", s.handleUserDisable)
	mux.HandleFunc("POST /users/reset", s.handleUserReset)

	mux.HandleFunc("GET /analytics", s.handleAnalytics)

	mux.HandleFunc("POST /api/assist/schema", s.handleAssistSchema)
	mux.HandleFunc("POST /api/assist/summarize", s.handleAssistSummarize)
	mux.HandleFunc("POST /api/assist/brainstorm", s.handleAssistBrainstorm)
	mux.HandleFunc("POST /api/assist/write", s.handleAssistWrite)

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("POST /mode", s.handleModeToggle)

	return s.logRequests(s.requireSession(mux))
}

// logRequests wraps the tree with zap request logging.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// serverError logs the real error and shows the client a generic message.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("handler error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "something went wrong", http.StatusInternalServerError)
}
