package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adiavolo/comic-insights/internal/api/middleware"
	"github.com/adiavolo/comic-insights/internal/api/response"
	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/adiavolo/comic-insights/internal/service"
)

// CharacterHandler exposes roster management and LLM-backed extraction
type CharacterHandler struct {
	characterService *service.CharacterService
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(characterService *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characterService: characterService}
}

func sessionIDOr400(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.BadRequest(w, "missing session ID")
	}
	return sessionID, ok
}

// List returns the session's roster
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	response.OK(w, map[string]any{
		"characters": h.characterService.Roster(sessionID),
		"confirmed":  h.characterService.IsConfirmed(sessionID),
	})
}

// Replace sets the whole roster at once
func (h *CharacterHandler) Replace(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	var req struct {
		Characters []domain.Character `json:"characters" validate:"required,dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	h.characterService.SetRoster(sessionID, req.Characters)
	response.OK(w, map[string]any{"characters": h.characterService.Roster(sessionID)})
}

// Add appends one character to the roster
func (h *CharacterHandler) Add(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	var c domain.Character
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if c.Name == "" {
		response.BadRequest(w, "character name is required")
		return
	}

	id := h.characterService.Add(sessionID, c)
	response.Created(w, map[string]string{"id": id.String()})
}

// Update edits an existing character
func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	characterID, err := uuid.Parse(chi.URLParam(r, "characterID"))
	if err != nil {
		response.BadRequest(w, "invalid character ID")
		return
	}

	var updates domain.Character
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.characterService.Update(sessionID, characterID, updates); err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			response.NotFound(w, "character not found")
			return
		}
		response.InternalError(w, "failed to update character")
		return
	}

	response.OK(w, map[string]string{"message": "character updated"})
}

// Delete removes a character from the roster
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	characterID, err := uuid.Parse(chi.URLParam(r, "characterID"))
	if err != nil {
		response.BadRequest(w, "invalid character ID")
		return
	}

	h.characterService.Delete(sessionID, characterID)
	response.OK(w, map[string]string{"message": "character deleted"})
}

// Extract pulls characters out of a story summary via the LLM. The result is
// returned for review; it does not touch the stored roster.
func (h *CharacterHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionIDOr400(w, r); !ok {
		return
	}

	var req struct {
		Story    string `json:"story" validate:"required"`
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	characters, err := h.characterService.ExtractFromSummary(r.Context(), req.Story, req.Provider)
	if err != nil {
		response.BadGateway(w, "character extraction failed: "+err.Error())
		return
	}

	response.OK(w, map[string]any{"characters": characters})
}

// RegenerateTags derives booru tags from an appearance description
func (h *CharacterHandler) RegenerateTags(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionIDOr400(w, r); !ok {
		return
	}

	var req struct {
		Appearance string `json:"appearance" validate:"required"`
		Provider   string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tags, err := h.characterService.RegenerateBooruTags(r.Context(), req.Appearance, req.Provider)
	if err != nil {
		response.BadGateway(w, "tag regeneration failed: "+err.Error())
		return
	}

	response.OK(w, map[string]string{"booru_tags": tags})
}

// Confirm locks the roster for the session
func (h *CharacterHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	h.characterService.Confirm(sessionID)
	response.OK(w, map[string]any{"confirmed": true})
}

// Export writes the roster snapshot to disk and returns the path
func (h *CharacterHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDOr400(w, r)
	if !ok {
		return
	}

	path, err := h.characterService.ExportToFile(sessionID)
	if err != nil {
		response.InternalError(w, "failed to export roster: "+err.Error())
		return
	}

	response.OK(w, map[string]string{"path": path})
}
