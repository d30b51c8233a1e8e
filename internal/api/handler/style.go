package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/adiavolo/comic-insights/internal/api/response"
	"github.com/adiavolo/comic-insights/internal/styles"
)

var validate = validator.New()

// StyleHandler exposes the loaded style library
type StyleHandler struct {
	library *styles.Library
}

// NewStyleHandler creates a new style handler
func NewStyleHandler(library *styles.Library) *StyleHandler {
	return &StyleHandler{library: library}
}

// ListBaseStyles returns base style names in configuration order
func (h *StyleHandler) ListBaseStyles(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{"styles": h.library.BaseStyleNames()})
}

// ListCustomStyles returns custom style names in configuration order
func (h *StyleHandler) ListCustomStyles(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{"styles": h.library.CustomStyleNames()})
}

// ListAspectRatios returns aspect ratio names in configuration order
func (h *StyleHandler) ListAspectRatios(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{"aspect_ratios": h.library.AspectRatioNames()})
}

// PreviewPrompt composes a prompt without generating an image
func (h *StyleHandler) PreviewPrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt       string   `json:"prompt" validate:"required"`
		BaseStyle    string   `json:"base_style"`
		CustomStyles []string `json:"custom_styles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	final, negative := h.library.BuildPrompt(req.Prompt, req.BaseStyle, req.CustomStyles)
	response.OK(w, map[string]string{
		"prompt":          final,
		"negative_prompt": negative,
	})
}
