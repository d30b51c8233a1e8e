package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adiavolo/comic-insights/internal/api/response"
	"github.com/adiavolo/comic-insights/internal/service"
)

// StoryHandler exposes story summary generation and refinement
type StoryHandler struct {
	storyService *service.StoryService
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// Summary generates an initial story summary from a raw prompt
func (h *StoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt   string `json:"prompt" validate:"required"`
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

	summary, err := h.storyService.GenerateSummary(r.Context(), req.Provider, req.Prompt)
	if err != nil {
		response.BadGateway(w, "summary generation failed: "+err.Error())
		return
	}

	response.OK(w, map[string]string{"summary": summary})
}

// Refine revises a summary according to a free-text instruction
func (h *StoryHandler) Refine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Summary     string `json:"summary" validate:"required"`
		Instruction string `json:"instruction" validate:"required"`
		Provider    string `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	refined, err := h.storyService.RefineSummary(r.Context(), req.Provider, req.Summary, req.Instruction)
	if err != nil {
		response.BadGateway(w, "summary refinement failed: "+err.Error())
		return
	}

	response.OK(w, map[string]string{"summary": refined})
}

// Correct applies a light grammar pass to a manually edited summary
func (h *StoryHandler) Correct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Summary  string `json:"summary" validate:"required"`
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

	corrected, err := h.storyService.CorrectSummary(r.Context(), req.Provider, req.Summary)
	if err != nil {
		response.BadGateway(w, "summary correction failed: "+err.Error())
		return
	}

	response.OK(w, map[string]string{"summary": corrected})
}
