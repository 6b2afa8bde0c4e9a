package handlers

import (
	"net/http"
	"strconv"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office dashboard
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListFraudAlerts handles GET /admin/fraud-alerts?pending=true
func (h *AdminHandler) ListFraudAlerts(c *gin.Context) {
	onlyPending, _ := strconv.ParseBool(c.DefaultQuery("pending", "false"))
	alerts, err := h.adminService.ListFraudAlerts(c.Request.Context(), onlyPending)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// MarkAlertReviewed handles PUT /admin/fraud-alerts/:id/reviewed
func (h *AdminHandler) MarkAlertReviewed(c *gin.Context) {
	if err := h.adminService.MarkAlertReviewed(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListClaims handles GET /admin/claims?limit=n
func (h *AdminHandler) ListClaims(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	claims, err := h.adminService.ListClaims(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claims)
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ResetPromotion handles POST /admin/reset
func (h *AdminHandler) ResetPromotion(c *gin.Context) {
	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	summary, err := h.adminService.ResetPromotion(c.Request.Context(), req.Confirmation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
