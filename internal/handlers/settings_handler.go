package handlers

import (
	"net/http"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles promotion settings requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET /admin/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /admin/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.PromoSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondBadRequest(c, err)
		return
	}

	saved, err := h.settingsService.UpdateSettings(c.Request.Context(), &settings, sessionSubject(c), now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
