package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adiavolo/comic-insights/internal/api/middleware"
	"github.com/adiavolo/comic-insights/internal/api/response"
	"github.com/adiavolo/comic-insights/internal/domain"
)

// SessionHandler exposes session and history operations
type SessionHandler struct {
	sessions domain.SessionStore
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions domain.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create creates a new session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	response.Created(w, s)
}

// History returns the session's generation history in insertion order
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.BadRequest(w, "missing session ID")
		return
	}

	history, err := h.sessions.History(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, "failed to fetch history")
		return
	}

	response.OK(w, map[string]any{"history": history})
}

// GetEntry returns a single history entry by 0-based index
func (h *SessionHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.BadRequest(w, "missing session ID")
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "invalid entry index")
		return
	}

	entry, ok := h.sessions.Entry(sessionID, index)
	if !ok {
		response.NotFound(w, "entry not found")
		return
	}

	response.OK(w, entry)
}

// Status returns a point-in-time summary of the session
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.BadRequest(w, "missing session ID")
		return
	}

	summary, err := h.sessions.Status(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, "failed to fetch session status")
		return
	}

	response.OK(w, summary)
}

// Export writes the session snapshot to disk and returns the path
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.BadRequest(w, "missing session ID")
		return
	}

	path, err := h.sessions.Export(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, "failed to export session: "+err.Error())
		return
	}

	response.OK(w, map[string]string{"path": path})
}
