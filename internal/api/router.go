package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/adiavolo/comic-insights/internal/api/handler"
	customMiddleware "github.com/adiavolo/comic-insights/internal/api/middleware"
	"github.com/adiavolo/comic-insights/internal/character"
	"github.com/adiavolo/comic-insights/internal/config"
	"github.com/adiavolo/comic-insights/internal/imagegen"
	"github.com/adiavolo/comic-insights/internal/llm"
	"github.com/adiavolo/comic-insights/internal/llm/gemini"
	"github.com/adiavolo/comic-insights/internal/llm/ollama"
	"github.com/adiavolo/comic-insights/internal/service"
	"github.com/adiavolo/comic-insights/internal/session"
	"github.com/adiavolo/comic-insights/internal/styles"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, library *styles.Library) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize stores
	sessionStore := session.NewManager(cfg.Export.Dir)
	characterStore := character.NewStore(cfg.Export.Dir)

	// Initialize LLM router with providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		log.Info().Msg("Registering Gemini provider")
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	}

	// Image backend and generation cache
	imageClient := imagegen.NewClient(cfg.ImageGen, cfg.Export.Dir)
	generationCache := gocache.New(cfg.ImageGen.CacheTTL, 2*cfg.ImageGen.CacheTTL)

	// Initialize services
	generateService := service.NewGenerateService(
		library,
		imageClient,
		sessionStore,
		generationCache,
		cfg.ImageGen.MaxDimension,
	)
	characterService := service.NewCharacterService(characterStore, llmRouter)
	storyService := service.NewStoryService(llmRouter)

	// Initialize handlers
	styleHandler := handler.NewStyleHandler(library)
	sessionHandler := handler.NewSessionHandler(sessionStore)
	generateHandler := handler.NewGenerateHandler(generateService)
	characterHandler := handler.NewCharacterHandler(characterService)
	storyHandler := handler.NewStoryHandler(storyService)

	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			// LLM providers
			r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

			// Style library
			r.Get("/styles", styleHandler.ListBaseStyles)
			r.Get("/styles/custom", styleHandler.ListCustomStyles)
			r.Get("/aspect-ratios", styleHandler.ListAspectRatios)
			r.Post("/styles/preview", styleHandler.PreviewPrompt)

			// Sessions
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", sessionHandler.Create)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Use(customMiddleware.SessionContext)

					r.Get("/history", sessionHandler.History)
					r.Get("/entries/{index}", sessionHandler.GetEntry)
					r.Get("/status", sessionHandler.Status)
					r.Post("/export", sessionHandler.Export)

					r.Post("/generate", generateHandler.Generate)

					// Story summaries
					r.Route("/story", func(r chi.Router) {
						r.Post("/summary", storyHandler.Summary)
						r.Post("/refine", storyHandler.Refine)
						r.Post("/correct", storyHandler.Correct)
					})

					// Character roster
					r.Route("/characters", func(r chi.Router) {
						r.Get("/", characterHandler.List)
						r.Post("/", characterHandler.Add)
						r.Put("/", characterHandler.Replace)
						r.Post("/extract", characterHandler.Extract)
						r.Post("/regenerate-tags", characterHandler.RegenerateTags)
						r.Post("/confirm", characterHandler.Confirm)
						r.Post("/export", characterHandler.Export)

						r.Route("/{characterID}", func(r chi.Router) {
							r.Patch("/", characterHandler.Update)
							r.Delete("/", characterHandler.Delete)
						})
					})
				})
			})
		})
	})

	return r
}
