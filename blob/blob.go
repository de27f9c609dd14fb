package blob

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("blob: not found")
	ErrInvalidPath  = errors.New("blob: invalid path")
	ErrBadSignature = errors.New("blob: bad or expired signature")
)

// Object describes one stored file.
type Object struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Store keeps uploads in a local directory tree. Paths are always
// slash-separated and relative to the root; anything trying to escape the
// root is rejected before touching the filesystem.
type Store struct {
	root   string
	secret []byte
}

func NewStore(root, signingSecret string) *Store {
	return &Store{root: root, secret: []byte(signingSecret)}
}

// cleanPath validates and normalizes a client-supplied object path.
// Validation runs on the raw input: cleaning first would silently rewrite
// "../x" into "x" instead of rejecting it.
func (s *Store) cleanPath(p string) (string, error) {
	if p == "" || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return "", ErrInvalidPath
	}
	return p, nil
}

// List returns objects under the prefix, sorted by path.
func (s *Store) List(prefix string) ([]Object, error) {
	var objects []Object
	err := filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(rel, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Path: rel, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing blobs: %w", err)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

// Upload writes the object, creating parent directories as needed. Existing
// objects at the same path are replaced.
func (s *Store) Upload(objectPath string, r io.Reader) error {
	p, err := s.cleanPath(objectPath)
	if err != nil {
		return err
	}
	dst := filepath.Join(s.root, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating blob directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating blob %s: %w", p, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("writing blob %s: %w", p, err)
	}
	return nil
}

// Open returns a reader for the object. Callers close it.
func (s *Store) Open(objectPath string) (io.ReadCloser, error) {
	p, err := s.cleanPath(objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(p)))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("opening blob %s: %w", p, err)
	}
	return f, nil
}

func (s *Store) Delete(objectPath string) error {
	p, err := s.cleanPath(objectPath)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(p)))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting blob %s: %w", p, err)
	}
	return nil
}

// SignedURL builds a time-limited download path for the object, served by the
// studio's /dl handler. The signature covers path and expiry.
func (s *Store) SignedURL(objectPath string, ttl time.Duration) (string, error) {
	p, err := s.cleanPath(objectPath)
	if err != nil {
		return "", err
	}
	exp := time.Now().Add(ttl).Unix()
	q := url.Values{
		"path": {p},
		"exp":  {strconv.FormatInt(exp, 10)},
		"sig":  {s.sign(p, exp)},
	}
	return "/dl?" + q.Encode(), nil
}

// VerifySignedRequest checks the query parameters of a download request and
// returns the object path they authorize.
func (s *Store) VerifySignedRequest(q url.Values) (string, error) {
	p := q.Get("path")
	exp, err := strconv.ParseInt(q.Get("exp"), 10, 64)
	if err != nil {
		return "", ErrBadSignature
	}
	if !hmac.Equal([]byte(s.sign(p, exp)), []byte(q.Get("sig"))) {
		return "", ErrBadSignature
	}
	if time.Now().Unix() > exp {
		return "", ErrBadSignature
	}
	return p, nil
}

func (s *Store) sign(p string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", p, exp)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
