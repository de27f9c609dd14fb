package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdrahmanz/curator/analytics"
	"github.com/mdrahmanz/curator/blob"
	"github.com/mdrahmanz/curator/config"
	"github.com/mdrahmanz/curator/document"
	"github.com/mdrahmanz/curator/store"
)

// newTestServer builds a studio with no database, no users, and no AI key,
// which forces demo mode for every request.
func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	cfg := config.Config{BlobDir: t.TempDir(), SignedURLKey: "test-key"}
	srv := New(zap.NewNop(), cfg, nil, nil, blob.NewStore(cfg.BlobDir, cfg.SignedURLKey), nil)
	return srv, srv.Routes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDashboardListsDemoCollections(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "posts")
	assert.Contains(t, body, "projects")
	assert.Contains(t, body, "demo mode")
}

func TestCollectionPageListsDocuments(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/c/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Launching the new portfolio")
}

func TestReservedCollectionIsHidden(t *testing.T) {
	_, h := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/c/_schemas").Code)
}

func TestNewDocumentFormFollowsSchema(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/c/posts/new")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	// the saved demo schema: checkbox for featured, datetime for publishedAt,
	// number for views, textarea for content
	assert.Contains(t, body, `type="checkbox" id="featured"`)
	assert.Contains(t, body, `type="datetime-local" id="publishedAt"`)
	assert.Contains(t, body, `type="number" id="views"`)
	assert.Contains(t, body, `<textarea id="content"`)
	assert.NotContains(t, body, `name="id"`)
}

func TestNewDocumentFormInfersWithoutSchema(t *testing.T) {
	_, h := newTestServer(t)
	// projects has documents but no saved schema
	rec := get(t, h, "/c/projects/new")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "inferred")
	assert.Contains(t, body, `<textarea id="description"`)
	assert.Contains(t, body, `type="number" id="stars"`)
}

func TestCreateDocumentValidDataRedirects(t *testing.T) {
	srv, h := newTestServer(t)

	rec := postForm(t, h, "/c/posts", url.Values{
		"title":       {"A fresh post"},
		"content":     {"Body text."},
		"publishedAt": {"2024-06-01T10:00"},
		"featured":    {"on"},
		"views":       {"0"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	count, err := srv.demo.Docs.Count(context.Background(), "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCreateDocumentInvalidFieldWritesNothing(t *testing.T) {
	srv, h := newTestServer(t)

	rec := postForm(t, h, "/c/posts", url.Values{
		"title": {"Broken"},
		"views": {"not a number"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a number")
	// the submitted title survives the round trip
	assert.Contains(t, rec.Body.String(), `value="Broken"`)

	count, err := srv.demo.Docs.Count(context.Background(), "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEditFormPrefillsAndSkipsID(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/c/posts/post-1/edit")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `value="Launching the new portfolio"`)
	assert.Contains(t, body, `type="checkbox" id="featured" name="featured" checked`)
	assert.NotContains(t, body, `name="id"`)
}

func TestUpdateDocumentRoundTrip(t *testing.T) {
	srv, h := newTestServer(t)

	rec := postForm(t, h, "/c/posts/post-2", url.Values{
		"title":       {"Notes on schema inference, revised"},
		"content":     {"Updated body."},
		"publishedAt": {"2024-05-20T09:00"},
		"views":       {"400"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	doc, err := srv.demo.Docs.Get(context.Background(), "posts", "post-2")
	require.NoError(t, err)
	v, ok := doc.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Notes on schema inference, revised", v.Str())
}

func TestDeleteDocument(t *testing.T) {
	srv, h := newTestServer(t)

	rec := postForm(t, h, "/c/posts/post-1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	count, err := srv.demo.Docs.Count(context.Background(), "posts")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// unreachableDocs stands in for a live document store whose backend is down:
// every sample read fails with a transport error.
type unreachableDocs struct {
	store.DocumentStore
}

func (unreachableDocs) Sample(context.Context, string) (*document.Document, error) {
	return nil, errors.New("connection refused")
}

func TestFormPagesDegradeWhenSamplingFails(t *testing.T) {
	cfg := config.Config{BlobDir: t.TempDir(), SignedURLKey: "test-key"}
	live := &Backend{
		Docs:    unreachableDocs{},
		Schemas: store.MemorySchemas{Memory: store.NewMemory()},
		Reports: analytics.Demo{},
	}
	srv := New(zap.NewNop(), cfg, live, nil, blob.NewStore(cfg.BlobDir, cfg.SignedURLKey), nil)
	h := srv.Routes()

	// no saved schema and an unreachable sample still render usable pages
	rec := get(t, h, "/c/posts/new")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inferred")

	rec = get(t, h, "/c/posts/schema")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no sample document")
}

func TestSchemaPageShowsSource(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/c/posts/schema")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "name: publishedAt")
	assert.Contains(t, rec.Body.String(), "type: timestamp")
}

func TestSchemaSaveRejectsUnknownType(t *testing.T) {
	_, h := newTestServer(t)
	rec := postForm(t, h, "/c/posts/schema", url.Values{
		"source": {"fields:\n  - name: title\n    type: varchar\n"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown type")
}

func TestAnalyticsPageServesDemoData(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/posts/launching-the-new-portfolio")
}

func TestAssistUnavailableWithoutKey(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/assist/summarize", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestModeToggleSetsCookie(t *testing.T) {
	_, h := newTestServer(t)
	rec := postForm(t, h, "/mode", url.Values{"mode": {"demo"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	resp := rec.Result()
	defer func() { _, _ = io.Copy(io.Discard, resp.Body); _ = resp.Body.Close() }()
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "curator_mode", cookies[0].Name)
	assert.Equal(t, "demo", cookies[0].Value)
}

func TestFileUploadListDownloadDelete(t *testing.T) {
	_, h := newTestServer(t)

	// upload via multipart
	var buf strings.Builder
	boundary := "testboundary"
	buf.WriteString("--" + boundary + "\r\n")
	buf.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"note.txt\"\r\n")
	buf.WriteString("Content-Type: text/plain\r\n\r\n")
	buf.WriteString("hello blob")
	buf.WriteString("\r\n--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/files/upload", strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = get(t, h, "/files")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "note.txt")

	// pull the signed link out of the page and download through it
	start := strings.Index(body, "/dl?")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(body[start:], `"`)
	require.Greater(t, end, 0)
	link := strings.ReplaceAll(body[start:start+end], "&amp;", "&")

	rec = get(t, h, link)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello blob", rec.Body.String())

	rec = postForm(t, h, "/files/delete", url.Values{"path": {"note.txt"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}
