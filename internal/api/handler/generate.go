package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adiavolo/comic-insights/internal/api/middleware"
	"github.com/adiavolo/comic-insights/internal/api/response"
	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/adiavolo/comic-insights/internal/imagegen"
	"github.com/adiavolo/comic-insights/internal/service"
)

// GenerateHandler runs the panel generation pipeline
type GenerateHandler struct {
	generateService *service.GenerateService
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generateService *service.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: generateService}
}

// Generate composes the prompt, calls the image backend, and records the
// result in the session history
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		response.BadRequest(w, "missing session ID")
		return
	}

	var req service.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.generateService.Generate(r.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			response.NotFound(w, "session not found")
		case errors.Is(err, imagegen.ErrBackend):
			response.BadGateway(w, "image generation failed: "+err.Error())
		default:
			response.InternalError(w, "generation failed")
		}
		return
	}

	response.OK(w, result)
}
