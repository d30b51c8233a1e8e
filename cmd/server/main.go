package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/api"
	"github.com/adiavolo/comic-insights/internal/config"
	"github.com/adiavolo/comic-insights/internal/logging"
	"github.com/adiavolo/comic-insights/internal/styles"
)

func main() {
	// Load .env file if present (ignore error in production)
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	closer, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer closer.Close()

	// The style library is required at boot; a broken styles file is fatal.
	library, err := styles.Load(cfg.Styles.BasePath, cfg.Styles.CustomPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load style library")
	}
	log.Info().
		Int("base_styles", len(library.BaseStyleNames())).
		Int("custom_styles", len(library.CustomStyleNames())).
		Int("aspect_ratios", len(library.AspectRatioNames())).
		Msg("Style library loaded")

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Export.Dir).Msg("Failed to create export directory")
	}

	router := api.NewRouter(cfg, library)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting Comic Insights server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
