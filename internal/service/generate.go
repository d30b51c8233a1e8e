package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/domain"
	"github.com/adiavolo/comic-insights/internal/imagegen"
	"github.com/adiavolo/comic-insights/internal/styles"
	"github.com/google/uuid"
)

// ImageGenerator is the collaborator that turns a composed prompt into an
// image artifact reference.
type ImageGenerator interface {
	Generate(ctx context.Context, req imagegen.Request) (*imagegen.Result, error)
	FullPrompt(req imagegen.Request) string
}

// GenerateRequest carries one comic panel generation.
type GenerateRequest struct {
	Prompt         string   `json:"prompt" validate:"required"`
	BaseStyle      string   `json:"base_style" validate:"required"`
	CustomStyles   []string `json:"custom_styles"`
	AspectRatio    string   `json:"aspect_ratio"`
	Dimension      int      `json:"dimension"`
	DimensionType  string   `json:"dimension_type" validate:"omitempty,oneof=width height"`
	CFGScale       float64  `json:"cfg_scale" validate:"omitempty,gte=1,lte=20"`
	NegativePrompt string   `json:"negative_prompt"`
}

// GenerateResult echoes the payload sent to the backend alongside the stored
// entry and the session history after the append.
type GenerateResult struct {
	Payload   string         `json:"payload"`
	ImagePath string         `json:"image_path"`
	Entry     *domain.Entry  `json:"entry"`
	History   []domain.Entry `json:"history"`
	Cached    bool           `json:"cached"`
}

// GenerateService runs the full panel generation pipeline: dimension solving,
// prompt composition, backend call, and history append.
type GenerateService struct {
	library      *styles.Library
	imageClient  ImageGenerator
	sessions     domain.SessionStore
	cache        *gocache.Cache
	maxDimension int
}

// NewGenerateService creates a generation service. cache may be nil to
// disable the repeat-request cache.
func NewGenerateService(
	library *styles.Library,
	imageClient ImageGenerator,
	sessions domain.SessionStore,
	cache *gocache.Cache,
	maxDimension int,
) *GenerateService {
	return &GenerateService{
		library:      library,
		imageClient:  imageClient,
		sessions:     sessions,
		cache:        cache,
		maxDimension: maxDimension,
	}
}

// SolveDimensions derives the panel size from an aspect ratio and a single
// user-chosen dimension, clamping both sides at max.
func SolveDimensions(ratio domain.AspectRatio, dimension int, dimensionType string, max int) (int, int) {
	w, h := ratio.Width, ratio.Height

	var width, height int
	if dimensionType == "height" {
		height = dimension
		if height > max {
			height = max
		}
		width = height * w / h
		if width > max {
			width = max
			height = width * h / w
		}
	} else {
		width = dimension
		if width > max {
			width = max
		}
		height = width * h / w
		if height > max {
			height = max
			width = height * w / h
		}
	}

	return width, height
}

// Generate composes the prompt, produces the image, and appends the result to
// the session history. Identical requests within the cache TTL reuse the
// previous artifact instead of hitting the backend again.
func (s *GenerateService) Generate(ctx context.Context, sessionID uuid.UUID, req GenerateRequest) (*GenerateResult, error) {
	ratio := s.library.AspectRatio(req.AspectRatio)

	// Ratio width/height are proportions, not pixels; an omitted dimension
	// anchors the solver at the standard panel size instead.
	dimension := req.Dimension
	if dimension <= 0 {
		dimension = styles.DefaultDimension
	}
	width, height := SolveDimensions(ratio, dimension, req.DimensionType, s.maxDimension)

	finalPrompt, customNegative := s.library.BuildPrompt(req.Prompt, req.BaseStyle, req.CustomStyles)

	negativeParts := make([]string, 0, 2)
	for _, p := range []string{customNegative, req.NegativePrompt} {
		if p != "" {
			negativeParts = append(negativeParts, p)
		}
	}
	finalNegative := strings.Join(negativeParts, ", ")

	cfgScale := req.CFGScale
	if cfgScale == 0 {
		cfgScale = 7.5
	}

	imgReq := imagegen.Request{
		Prompt:         finalPrompt,
		NegativePrompt: finalNegative,
		CFGScale:       cfgScale,
		Width:          width,
		Height:         height,
	}
	if base, ok := s.library.BaseStyle(req.BaseStyle); ok {
		imgReq.Lora = base.Lora
	}

	cacheKey := generationKey(imgReq)
	var result *imagegen.Result
	cached := false

	if s.cache != nil {
		if hit, ok := s.cache.Get(cacheKey); ok {
			result = hit.(*imagegen.Result)
			cached = true
			log.Debug().Str("session_id", sessionID.String()).Msg("Generation cache hit")
		}
	}

	if result == nil {
		var err error
		result, err = s.imageClient.Generate(ctx, imgReq)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetDefault(cacheKey, result)
		}
	}

	entry, err := s.sessions.AddEntry(sessionID, req.Prompt, req.BaseStyle, result.ImagePath, finalPrompt)
	if err != nil {
		return nil, err
	}

	history, err := s.sessions.History(sessionID)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Payload:   fmt.Sprintf("Prompt sent to image backend:\n%s", result.FullPrompt),
		ImagePath: result.ImagePath,
		Entry:     entry,
		History:   history,
		Cached:    cached,
	}, nil
}

func generationKey(req imagegen.Request) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf(
		"%s|%s|%.2f|%dx%d|%s",
		req.Prompt, req.NegativePrompt, req.CFGScale, req.Width, req.Height, strings.Join(req.Lora, " "),
	)))
	return hex.EncodeToString(sum[:])
}
