package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/auth"
)

// authMiddleware resolves the bearer token into a principal. A request with a
// missing or unusable token continues as anonymous; operations that need a
// caller reject it themselves.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := s.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			s.logger.Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}

func noStoreMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func principal(r *http.Request) auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}
