package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiavolo/comic-insights/internal/config"
)

func testConfig(endpoint string) config.ImageGenConfig {
	return config.ImageGenConfig{
		Endpoint:          endpoint,
		SamplerName:       "DPM++ 2M SDE",
		Steps:             23,
		StabilizerLora:    "<lora:stabilizer:0.5>",
		NegativeEmbedding: "lazyneg",
		MaxDimension:      1536,
		Timeout:           5 * time.Second,
	}
}

func TestClient_Generate(t *testing.T) {
	fakePNG := []byte("\x89PNG fake image bytes")

	var received txt2imgPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{
			"images": []string{base64.StdEncoding.EncodeToString(fakePNG)},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), t.TempDir())

	res, err := c.Generate(context.Background(), Request{
		Prompt:         "a cat, manga style",
		NegativePrompt: "blurry",
		CFGScale:       7.5,
		Width:          512,
		Height:         768,
		Lora:           []string{"<lora:manga_shader:0.8>"},
	})
	require.NoError(t, err)

	assert.Equal(t, "a cat, manga style <lora:manga_shader:0.8> <lora:stabilizer:0.5>", res.FullPrompt)
	assert.Equal(t, res.FullPrompt, received.Prompt)
	assert.Equal(t, "blurry lazyneg", received.NegativePrompt)
	assert.Equal(t, 7.5, received.CFGScale)
	assert.Equal(t, "DPM++ 2M SDE", received.SamplerName)
	assert.Equal(t, 23, received.Steps)
	assert.Equal(t, 512, received.Width)
	assert.Equal(t, 768, received.Height)

	saved, err := os.ReadFile(res.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, saved)
}

func TestClient_Generate_BackendErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), t.TempDir())
		_, err := c.Generate(context.Background(), Request{Prompt: "a cat"})
		assert.ErrorIs(t, err, ErrBackend)
	})

	t.Run("empty image list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"images": []string{}})
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), t.TempDir())
		_, err := c.Generate(context.Background(), Request{Prompt: "a cat"})
		assert.ErrorIs(t, err, ErrBackend)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		c := NewClient(testConfig("http://127.0.0.1:1"), t.TempDir())
		_, err := c.Generate(context.Background(), Request{Prompt: "a cat"})
		assert.ErrorIs(t, err, ErrBackend)
	})
}

func TestClient_FullPrompt_NoLora(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.StabilizerLora = ""
	c := NewClient(cfg, t.TempDir())

	assert.Equal(t, "a cat", c.FullPrompt(Request{Prompt: "a cat"}))
}
