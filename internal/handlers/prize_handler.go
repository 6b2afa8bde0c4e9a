package handlers

import (
	"net/http"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PrizeHandler handles prize catalog requests
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: prizeService}
}

// ListPrizes handles GET /prizes
func (h *PrizeHandler) ListPrizes(c *gin.Context) {
	prizes, err := h.prizeService.ListPrizes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// GetPrize handles GET /prizes/:id
func (h *PrizeHandler) GetPrize(c *gin.Context) {
	prize, err := h.prizeService.GetPrize(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prize)
}

// CreatePrize handles POST /admin/prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	var req models.PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prize, err := h.prizeService.CreatePrize(c.Request.Context(), &req, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /admin/prizes/:id
func (h *PrizeHandler) UpdatePrize(c *gin.Context) {
	var req models.PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	prize, err := h.prizeService.UpdatePrize(c.Request.Context(), c.Param("id"), &req, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /admin/prizes/:id
func (h *PrizeHandler) DeletePrize(c *gin.Context) {
	if err := h.prizeService.DeletePrize(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
