package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adiavolo/comic-insights/internal/api/response"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// SessionContext extracts the session ID from the URL and adds it to context.
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionIDStr := chi.URLParam(r, "sessionID")
		if sessionIDStr == "" {
			response.BadRequest(w, "missing session ID")
			return
		}

		sessionID, err := uuid.Parse(sessionIDStr)
		if err != nil {
			response.BadRequest(w, "invalid session ID")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID gets the session ID from context.
func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}
