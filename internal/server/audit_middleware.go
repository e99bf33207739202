package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

const (
	maxAuditBodyBytes = 2048
	redacted          = "[REDACTED]"
)

var sensitiveKeys = map[string]bool{
	"password": true,
	"token":    true,
}

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := &AuditLogEntry{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r),
		}

		p := principal(r)
		if p.Authenticated() {
			entry.Principal = p.Email
			entry.Kind = string(p.Kind)
		}

		vars := mux.Vars(r)
		if strings.HasPrefix(r.URL.Path, "/api/shipments/") {
			entry.ShipmentID = vars["id"]
		}

		contentType := r.Header.Get("Content-Type")
		if !strings.Contains(contentType, "multipart/form-data") && r.Body != nil {
			requestBody, _ := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes+1))
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(requestBody), r.Body))
			entry.Request = redactBody(requestBody)
		}

		if entry.Handler == "updateShipmentStatus" && entry.ShipmentID != "" {
			if shipment, err := s.storage.GetShipment(r.Context(), p, entry.ShipmentID); err == nil {
				entry.OldStatus = string(shipment.Status)
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r.WithContext(withAuditEntry(r.Context(), entry)))

		entry.StatusCode = wrw.GetStatusCode()
		entry.Duration = time.Since(start)
		if strings.HasPrefix(wrw.Header().Get("Content-Type"), "application/json") {
			entry.Response = redactBody(wrw.GetBody())
		}

		s.AuditManager.LogEntry(r.Context(), *entry)
	})
}

func handlerName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unknown"
}

// redactBody masks credentials in a JSON object and caps the size of what
// ends up in the audit log.
func redactBody(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		masked := false
		for k := range obj {
			if sensitiveKeys[k] {
				obj[k] = json.RawMessage(`"` + redacted + `"`)
				masked = true
			}
		}
		if masked {
			if b, err := json.Marshal(obj); err == nil {
				body = b
			}
		}
	}

	if len(body) > maxAuditBodyBytes {
		return string(body[:maxAuditBodyBytes]) + "..."
	}
	return string(body)
}
