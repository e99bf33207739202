package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/storage"
	"github.com/transcontinental/portal/internal/upload"
)

// multipartOverhead covers part headers and boundaries on top of the file
// bytes themselves.
const multipartOverhead = 1 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !principal(r).Authenticated() {
		s.writeError(w, r, "upload", storage.ErrUnauthorized)
		return
	}

	limit := int64(upload.MaxFilesPerRequest)*s.uploads.MaxFileBytes() + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mr, err := r.MultipartReader()
	if err != nil {
		s.writeError(w, r, "upload", fmt.Errorf("%w: expected multipart/form-data: %v", storage.ErrInvalidInput, err))
		return
	}

	res, err := s.uploads.Accept(r.Context(), mr)
	if err != nil {
		s.writeError(w, r, "upload", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	if !principal(r).Authenticated() {
		s.writeError(w, r, "getFile", storage.ErrUnauthorized)
		return
	}

	rc, contentType, err := s.uploads.Open(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, "getFile", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("failed to stream file", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
