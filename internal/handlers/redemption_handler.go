package handlers

import (
	"net/http"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RedemptionHandler serves the verifier scan flow
type RedemptionHandler struct {
	redemptionService services.RedemptionService
}

// NewRedemptionHandler creates a new RedemptionHandler
func NewRedemptionHandler(redemptionService services.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptionService: redemptionService}
}

// Verify handles POST /redemptions/verify. Nothing is written.
func (h *RedemptionHandler) Verify(c *gin.Context) {
	var req models.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	candidate, err := h.redemptionService.Verify(c.Request.Context(), req.Token, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "VALID", "candidate": candidate})
}

// Redeem handles POST /redemptions. The verifier is the session subject.
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	var req models.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.redemptionService.Redeem(c.Request.Context(), req.Token, sessionSubject(c), now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "CLAIMED",
		"claim":      result.Claim,
		"prize":      result.Prize,
		"winUpdated": result.WinUpdated,
	})
}
