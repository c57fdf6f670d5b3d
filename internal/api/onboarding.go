package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealdish/backend/internal/service"
	"github.com/dealdish/backend/internal/types"
)

// OnboardingHandler exposes the three-step wizard. The draft lives server
// side, so step state survives page reloads until it expires or completes.
type OnboardingHandler struct {
	onboarding service.IOnboardingService
}

func NewOnboardingHandler(onboarding service.IOnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

func (h *OnboardingHandler) RegisterRoutes(router *gin.RouterGroup) {
	onboarding := router.Group("/onboarding")
	{
		onboarding.GET("", h.Get)
		onboarding.POST("/start", h.Start)
		onboarding.POST("/step", h.ApplyStep)
		onboarding.POST("/next", h.Next)
		onboarding.POST("/previous", h.Previous)
		onboarding.POST("/complete", h.Complete)
	}
}

func (h *OnboardingHandler) Start(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	draft, err := h.onboarding.Start(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start onboarding"})
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (h *OnboardingHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	draft, err := h.onboarding.Get(c.Request.Context(), userID)
	if errors.Is(err, service.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no onboarding in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load onboarding"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *OnboardingHandler) ApplyStep(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.OnboardingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.onboarding.ApplyStep(c.Request.Context(), userID, &req)
	if errors.Is(err, service.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no onboarding in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save step"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *OnboardingHandler) Next(c *gin.Context) {
	h.move(c, h.onboarding.Next)
}

func (h *OnboardingHandler) Previous(c *gin.Context) {
	h.move(c, h.onboarding.Previous)
}

func (h *OnboardingHandler) move(c *gin.Context, fn func(ctx context.Context, userID uuid.UUID) (*service.OnboardingDraft, error)) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	draft, err := fn(c.Request.Context(), userID)
	if errors.Is(err, service.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no onboarding in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to move step"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// Complete performs the two dependent writes. On failure the user stays on
// step 3 with the draft intact and retries.
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	err := h.onboarding.Complete(c.Request.Context(), userID)
	if errors.Is(err, service.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no onboarding in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete onboarding"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect_to": "/upload"})
}
