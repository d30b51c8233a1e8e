package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/config"
)

// ErrBackend indicates the image backend rejected or failed the request.
var ErrBackend = errors.New("image generation backend error")

// Request describes one txt2img generation.
type Request struct {
	Prompt         string
	NegativePrompt string
	CFGScale       float64
	Width          int
	Height         int
	Lora           []string
}

// Result is the artifact reference plus the exact prompt sent to the backend.
type Result struct {
	ImagePath  string
	FullPrompt string
}

// Client talks to a Stable Diffusion webui txt2img endpoint and writes the
// returned image under the export directory.
type Client struct {
	cfg        config.ImageGenConfig
	exportDir  string
	httpClient *http.Client
}

// NewClient creates an image generation client.
func NewClient(cfg config.ImageGenConfig, exportDir string) *Client {
	return &Client{
		cfg:       cfg,
		exportDir: exportDir,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type txt2imgPayload struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	CFGScale       float64 `json:"cfg_scale"`
	SamplerName    string  `json:"sampler_name"`
	Steps          int     `json:"steps"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// FullPrompt returns the prompt the backend will see: the composed prompt
// plus the request's LoRA tags and the configured stabilizer LoRA.
func (c *Client) FullPrompt(req Request) string {
	loraTags := append([]string{}, req.Lora...)
	if c.cfg.StabilizerLora != "" {
		loraTags = append(loraTags, c.cfg.StabilizerLora)
	}
	if len(loraTags) == 0 {
		return req.Prompt
	}
	return strings.TrimSpace(req.Prompt + " " + strings.Join(loraTags, " "))
}

// Generate runs one txt2img request, saves the decoded image, and returns the
// saved path with the full prompt sent.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	fullPrompt := c.FullPrompt(req)

	negative := req.NegativePrompt
	if c.cfg.NegativeEmbedding != "" {
		negative = strings.TrimSpace(negative + " " + c.cfg.NegativeEmbedding)
	}

	payload := txt2imgPayload{
		Prompt:         fullPrompt,
		NegativePrompt: negative,
		CFGScale:       req.CFGScale,
		SamplerName:    c.cfg.SamplerName,
		Steps:          c.cfg.Steps,
		Width:          req.Width,
		Height:         req.Height,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	log.Debug().
		Str("endpoint", c.cfg.Endpoint).
		Int("width", req.Width).
		Int("height", req.Height).
		Msg("Sending txt2img request")

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBackend, resp.StatusCode)
	}

	var result txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrBackend, err)
	}
	if len(result.Images) == 0 {
		return nil, fmt.Errorf("%w: response contains no images", ErrBackend)
	}

	imageData, err := base64.StdEncoding.DecodeString(result.Images[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image data: %v", ErrBackend, err)
	}

	if err := os.MkdirAll(c.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	imagePath := filepath.Join(c.exportDir, fmt.Sprintf("generated_%s.png", time.Now().UTC().Format("20060102_150405.000000000")))
	if err := os.WriteFile(imagePath, imageData, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	log.Info().Str("path", imagePath).Msg("Saved generated image")

	return &Result{
		ImagePath:  imagePath,
		FullPrompt: fullPrompt,
	}, nil
}
