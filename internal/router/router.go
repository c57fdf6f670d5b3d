package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dealdish/backend/internal/api"
	"github.com/dealdish/backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *api.AuthHandler
	Profile    *api.ProfileHandler
	Onboarding *api.OnboardingHandler
	Recipe     *api.RecipeHandler
	Health     *api.HealthHandler

	TokenValidator middleware.TokenValidator
	// GenerateLimiter is optional; when nil the generate routes are not
	// rate limited (tests run without Redis).
	GenerateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	router.GET("/healthz", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(h.TokenValidator))
	{
		h.Auth.RegisterProtectedRoutes(protected)
		h.Profile.RegisterRoutes(protected)
		h.Onboarding.RegisterRoutes(protected)
		h.Recipe.RegisterRoutes(protected)

		generate := protected.Group("")
		if h.GenerateLimiter != nil {
			generate.Use(h.GenerateLimiter.Middleware())
		}
		h.Recipe.RegisterGenerateRoutes(generate)
	}

	return router
}
