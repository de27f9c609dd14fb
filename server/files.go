package server

import (
	"errors"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/mdrahmanz/curator/blob"
)

const uploadLimit = 32 << 20 // 32 MiB

type fileRow struct {
	Path string
	Size int64
	URL  string
}

type filesPage struct {
	Title   string
	Demo    bool
	Objects []fileRow
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	m := s.mode(r)

	objects, err := s.blobs.List("")
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	rows := make([]fileRow, 0, len(objects))
	for _, o := range objects {
		url, err := s.blobs.SignedURL(o.Path, time.Hour)
		if err != nil {
			continue
		}
		rows = append(rows, fileRow{Path: o.Path, Size: o.Size, URL: url})
	}
	s.render(w, "files", filesPage{Title: "Files", Demo: m.Demo, Objects: rows})
}

func (s *Server) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := path.Base(header.Filename)
	if err := s.blobs.Upload(name, file); err != nil {
		if errors.Is(err, blob.ErrInvalidPath) {
			http.Error(w, "invalid file name", http.StatusBadRequest)
			return
		}
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

func (s *Server) handleFileDelete(w http.ResponseWriter, r *http.Request) {
	err := s.blobs.Delete(r.FormValue("path"))
	if err != nil && !errors.Is(err, blob.ErrNotFound) {
		if errors.Is(err, blob.ErrInvalidPath) {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

// handleDownload serves a blob addressed by a signed URL. The signature is
// the only authorization; the handler is exempt from session checks.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	objectPath, err := s.blobs.VerifySignedRequest(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid or expired link", http.StatusForbidden)
		return
	}
	f, err := s.blobs.Open(objectPath)
	if errors.Is(err, blob.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(objectPath)+`"`)
	if _, err := io.Copy(w, f); err != nil {
		s.log.Warn("download interrupted")
	}
}
