package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealdish/backend/internal/service"
	"github.com/dealdish/backend/internal/store"
	"github.com/dealdish/backend/internal/types"
)

// AuthHandler serves sign-up, sign-in and sign-out. Every auth response
// carries the onboarding-derived redirect target so the client never has to
// compute it.
type AuthHandler struct {
	auth    service.IAuthService
	profile service.IProfileService
	stores  *store.Manager
}

func NewAuthHandler(auth service.IAuthService, profile service.IProfileService, stores *store.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, profile: profile, stores: stores}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.Session)
	}
}

func redirectFor(hasCompletedOnboarding bool) string {
	if hasCompletedOnboarding {
		return "/upload"
	}
	return "/onboarding"
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), &req)
	if errors.Is(err, service.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	// A fresh account has never onboarded.
	c.JSON(http.StatusCreated, types.AuthResponse{
		Token:      token,
		UserID:     user.ID.String(),
		Email:      user.Email,
		RedirectTo: redirectFor(false),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	completed, err := h.profile.HasCompletedOnboarding(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		Token:                  token,
		UserID:                 user.ID.String(),
		Email:                  user.Email,
		HasCompletedOnboarding: completed,
		RedirectTo:             redirectFor(completed),
	})
}

// Session re-derives the redirect for a restored session.
func (h *AuthHandler) Session(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	completed, err := h.profile.HasCompletedOnboarding(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	emailVal, _ := c.Get("email")
	email, _ := emailVal.(string)
	c.JSON(http.StatusOK, types.AuthResponse{
		UserID:                 userID.String(),
		Email:                  email,
		HasCompletedOnboarding: completed,
		RedirectTo:             redirectFor(completed),
	})
}

// Logout drops the user's recipe store; the client discards the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.stores.Remove(userID)
	c.JSON(http.StatusOK, gin.H{"redirect_to": "/"})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
