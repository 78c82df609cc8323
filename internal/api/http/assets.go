// internal/api/http/assets.go
package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-qtigen/internal/apperr"
	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	"github.com/mind-engage/mindengage-qtigen/internal/storage"
)

// MountSamples serves the question bank templates.
func MountSamples(r chi.Router, bs storage.BlobStore) {
	// GET /api/sample -> template names
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		keys, err := bs.List()
		if err != nil {
			logger.Get().Error("list samples", zap.Error(err))
			apperr.Write(w, apperr.Internal("Error listing samples.", err))
			return
		}
		respondJSON(w, http.StatusOK, map[string][]string{"files": keys})
	})

	// GET /api/sample/{fileName} -> download
	r.Get("/{fileName}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "fileName")
		rc, err := bs.Get(name)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				logger.Get().Warn("open sample", zap.String("file", name), zap.Error(err))
			}
			apperr.Write(w, apperr.NotFound("File not found."))
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(name)}))
		_, _ = io.Copy(w, rc)
	})
}

// MountStatic serves the browser form from dir when it exists.
func MountStatic(r chi.Router, dir string) bool {
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return false
	}
	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return true
}
