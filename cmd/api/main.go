package main

import (
	"log/slog"
	"os"

	"github.com/dealdish/backend/config"
	"github.com/dealdish/backend/internal/api"
	"github.com/dealdish/backend/internal/database"
	"github.com/dealdish/backend/internal/middleware"
	"github.com/dealdish/backend/internal/router"
	"github.com/dealdish/backend/internal/server"
	"github.com/dealdish/backend/internal/service"
	"github.com/dealdish/backend/internal/store"
	"github.com/dealdish/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	llm, err := service.NewLLMService(cfg)
	if err != nil {
		slog.Error("failed to initialize llm gateway", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db, llm)
	onboardingService := service.NewOnboardingService(db, service.NewRedisDraftStore(redisClient))

	stores := store.NewManager(recipeService)

	engine := router.SetupRouter(router.Handlers{
		Auth:            api.NewAuthHandler(authService, profileService, stores),
		Profile:         api.NewProfileHandler(profileService),
		Onboarding:      api.NewOnboardingHandler(onboardingService),
		Recipe:          api.NewRecipeHandler(recipeService, stores),
		Health:          api.NewHealthHandler(db),
		TokenValidator:  authService,
		GenerateLimiter: middleware.NewGenerationRateLimiter(redisClient),
	})

	srv := server.NewServer(engine)
	slog.Info("starting server", "port", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
