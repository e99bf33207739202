package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/metrics"
	"github.com/transcontinental/portal/internal/storage"
)

const maxJSONBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Warn("failed to encode response", zap.Error(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// writeError maps a storage error to its HTTP status. Anything that is not a
// known sentinel is logged and reported as 500 without details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var status int
	switch {
	case errors.Is(err, storage.ErrInvalidInput), errors.Is(err, storage.ErrOwnerNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, storage.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidTransition), errors.Is(err, storage.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
	default:
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		s.logger.Error("operation failed",
			zap.String("operation", operation),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondError(w, status, err.Error())
}

// decodeJSON reads a single JSON object into dst. Unknown fields, trailing
// data and type mismatches are reported as invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body too large", storage.ErrPayloadTooLarge)
		}
		return fmt.Errorf("%w: invalid request body: %v", storage.ErrInvalidInput, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: invalid request body: unexpected trailing data", storage.ErrInvalidInput)
	}
	return nil
}
