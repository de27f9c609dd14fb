package blob

import (
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), "test-signing-secret")
}

func TestUploadOpenDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upload("images/logo.png", strings.NewReader("png bytes")))

	r, err := store.Open("images/logo.png")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, r.Close())
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))

	require.NoError(t, store.Delete("images/logo.png"))
	_, err = store.Open("images/logo.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListWithPrefix(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upload("images/a.png", strings.NewReader("a")))
	require.NoError(t, store.Upload("images/b.png", strings.NewReader("b")))
	require.NoError(t, store.Upload("docs/readme.md", strings.NewReader("c")))

	objects, err := store.List("images/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "images/a.png", objects[0].Path)
	assert.Equal(t, "images/b.png", objects[1].Path)

	all, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPathTraversalRejected(t *testing.T) {
	store := newTestStore(t)
	for _, p := range []string{"../outside.txt", "a/../../etc/passwd", "..", "a/..", "", ".", "..\\windows"} {
		err := store.Upload(p, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q", p)
	}
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upload("report.pdf", strings.NewReader("pdf")))

	signed, err := store.SignedURL("report.pdf", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	p, err := store.VerifySignedRequest(u.Query())
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", p)
}

func TestSignedURLRejectsTampering(t *testing.T) {
	store := newTestStore(t)
	signed, err := store.SignedURL("report.pdf", time.Hour)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	q := u.Query()
	q.Set("path", "secret.pdf")
	_, err = store.VerifySignedRequest(q)
	assert.ErrorIs(t, err, ErrBadSignature)

	q = u.Query()
	q.Set("exp", strconv.FormatInt(time.Now().Add(48*time.Hour).Unix(), 10))
	_, err = store.VerifySignedRequest(q)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestSignedURLExpires(t *testing.T) {
	store := newTestStore(t)
	signed, err := store.SignedURL("report.pdf", -time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	_, err = store.VerifySignedRequest(u.Query())
	assert.ErrorIs(t, err, ErrBadSignature)
}
