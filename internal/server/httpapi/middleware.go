package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// ctxKey avoids collisions with context keys from other packages.
type ctxKey string

const principalKey ctxKey = "principal"

const bearerPrefix = "Bearer "

// requireAuth is the session gate. It verifies the bearer token, resolves the
// subject to a User, and attaches it to the request context. An unknown
// subject gets the same response as a bad token, so the two conditions are
// indistinguishable from outside. The user lookup is the gate's only I/O.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "Not authorized, token missing"})
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "Invalid or expired token"})
			return
		}

		user, err := s.users.GetByID(r.Context(), userID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "Invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, user)
		next(w, r.WithContext(ctx))
	}
}

// principalFrom returns the authenticated user attached by requireAuth.
// Handlers must take identity from here and never from request bodies.
func principalFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
