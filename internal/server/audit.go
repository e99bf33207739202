package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AuditLogEntry struct {
	Timestamp  time.Time     `json:"timestamp"`
	Handler    string        `json:"handler"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	StatusCode int           `json:"status_code"`
	Duration   time.Duration `json:"duration"`
	Principal  string        `json:"principal,omitempty"`
	Kind       string        `json:"kind,omitempty"`
	ShipmentID string        `json:"shipment_id,omitempty"`
	OldStatus  string        `json:"old_status,omitempty"`
	NewStatus  string        `json:"new_status,omitempty"`
	Request    string        `json:"request,omitempty"`
	Response   string        `json:"response,omitempty"`
}

func (e AuditLogEntry) fields() []zap.Field {
	fields := []zap.Field{
		zap.Time("timestamp", e.Timestamp),
		zap.String("handler", e.Handler),
		zap.String("method", e.Method),
		zap.String("path", e.Path),
		zap.Int("status_code", e.StatusCode),
		zap.Duration("duration", e.Duration),
	}
	if e.Principal != "" {
		fields = append(fields, zap.String("principal", e.Principal), zap.String("kind", e.Kind))
	}
	if e.ShipmentID != "" {
		fields = append(fields, zap.String("shipment_id", e.ShipmentID))
	}
	if e.OldStatus != "" || e.NewStatus != "" {
		fields = append(fields, zap.String("old_status", e.OldStatus), zap.String("new_status", e.NewStatus))
	}
	if e.Request != "" {
		fields = append(fields, zap.String("request", e.Request))
	}
	if e.Response != "" {
		fields = append(fields, zap.String("response", e.Response))
	}
	return fields
}

type auditKey struct{}

// annotate lets a handler add details to the audit entry of its request.
func annotate(r *http.Request, fn func(e *AuditLogEntry)) {
	if e, ok := r.Context().Value(auditKey{}).(*AuditLogEntry); ok {
		fn(e)
	}
}

func withAuditEntry(ctx context.Context, e *AuditLogEntry) context.Context {
	return context.WithValue(ctx, auditKey{}, e)
}
