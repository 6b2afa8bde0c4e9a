package handlers

import (
	"net/http"

	"github.com/ArowuTest/sansol-promo-backend/internal/middleware"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles staff authentication and verifier accounts
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c))
}

// CreateVerifier handles POST /admin/verifiers
func (h *AuthHandler) CreateVerifier(c *gin.Context) {
	var req models.VerifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	verifier, err := h.authService.CreateVerifier(c.Request.Context(), &req, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, verifier)
}

// ListVerifiers handles GET /admin/verifiers
func (h *AuthHandler) ListVerifiers(c *gin.Context) {
	verifiers, err := h.authService.ListVerifiers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verifiers)
}

// DeleteVerifier handles DELETE /admin/verifiers/:id
func (h *AuthHandler) DeleteVerifier(c *gin.Context) {
	if err := h.authService.DeleteVerifier(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
