package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ParticipantHandler handles participant registration
type ParticipantHandler struct {
	participantService services.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// Register handles POST /participants
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.participantService.Register(c.Request.Context(), &req, now())
	if err != nil {
		var rejection *services.FraudRejection
		if errors.As(err, &rejection) {
			_ = c.Error(err)
			c.JSON(http.StatusForbidden, gin.H{
				"code":        "FRAUD_DETECTED",
				"error":       "registration rejected",
				"explanation": rejection.Explanation,
			})
			return
		}
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Returning {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetParticipant handles GET /participants/:phone
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	participant, err := h.participantService.GetParticipant(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}
