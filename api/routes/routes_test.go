package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArowuTest/sansol-promo-backend/internal/config"
	"github.com/ArowuTest/sansol-promo-backend/internal/handlers"
	"github.com/ArowuTest/sansol-promo-backend/internal/metrics"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

type verifierOnly struct{}

func (verifierOnly) ParseToken(token string) (*models.Session, error) {
	if token != "verifier" {
		return nil, errors.New("invalid")
	}
	return &models.Session{Subject: "caja1", Role: models.RoleVerifier}, nil
}

func newTestRouter(health func(ctx context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:    config.ServerConfig{AllowedHosts: []string{"*"}},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 600, Burst: 50},
	}
	reg := prometheus.NewRegistry()
	return SetupRouter(cfg, HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(nil),
		ParticipantHandler: handlers.NewParticipantHandler(nil),
		PlayHandler:        handlers.NewPlayHandler(nil, nil),
		RedemptionHandler:  handlers.NewRedemptionHandler(nil),
		PrizeHandler:       handlers.NewPrizeHandler(nil),
		SettingsHandler:    handlers.NewSettingsHandler(nil),
		AdminHandler:       handlers.NewAdminHandler(nil),
		Tokens:             verifierOnly{},
		Logger:             logger.Discard(),
		Metrics:            metrics.NewMetrics(reg),
		Gatherer:           reg,
		HealthCheck:        health,
	})
}

func serve(r http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	ok := newTestRouter(func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, serve(ok, http.MethodGet, "/api/v1/health", "").Code)

	down := newTestRouter(func(context.Context) error { return errors.New("no primary") })
	assert.Equal(t, http.StatusServiceUnavailable, serve(down, http.MethodGet, "/api/v1/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil)
	serve(r, http.MethodGet, "/api/v1/health", "")

	w := serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sansol_http_requests_total")
}

func TestStaffRoutesRequireRoles(t *testing.T) {
	r := newTestRouter(nil)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/api/v1/redemptions", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/v1/admin/stats", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/api/v1/admin/stats", "verifier").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/api/v1/admin/reset", "verifier").Code)

	// body validation runs before the service is reached
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/v1/redemptions", "verifier").Code)
}
