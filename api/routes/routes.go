package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/config"
	"github.com/ArowuTest/sansol-promo-backend/internal/handlers"
	"github.com/ArowuTest/sansol-promo-backend/internal/metrics"
	"github.com/ArowuTest/sansol-promo-backend/internal/middleware"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies holds the handlers and shared infrastructure the router wires
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ParticipantHandler *handlers.ParticipantHandler
	PlayHandler        *handlers.PlayHandler
	RedemptionHandler  *handlers.RedemptionHandler
	PrizeHandler       *handlers.PrizeHandler
	SettingsHandler    *handlers.SettingsHandler
	AdminHandler       *handlers.AdminHandler

	Tokens   middleware.TokenParser
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// HealthCheck reports whether the backing store is reachable
	HealthCheck func(ctx context.Context) error
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedHosts))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))

	router.GET("/api/v1/health", healthHandler(deps.HealthCheck))
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	// Public participant routes
	public := router.Group("/api/v1")
	public.Use(limiter.Middleware())
	{
		public.POST("/auth/login", deps.AuthHandler.Login)

		public.POST("/participants", deps.ParticipantHandler.Register)
		public.GET("/participants/:phone", deps.ParticipantHandler.GetParticipant)

		public.GET("/trivia", deps.PlayHandler.Questions)
		public.POST("/trivia/answers", deps.PlayHandler.SubmitAnswers)
		public.POST("/reveal", deps.PlayHandler.Reveal)

		public.GET("/wins/:token", deps.PlayHandler.GetWin)
		public.GET("/wins/:token/qr.png", deps.PlayHandler.WinQR)

		public.GET("/prizes", deps.PrizeHandler.ListPrizes)
		public.GET("/prizes/:id", deps.PrizeHandler.GetPrize)
	}

	// Staff routes
	staff := router.Group("/api/v1")
	staff.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		staff.GET("/auth/me", deps.AuthHandler.Me)

		redemptions := staff.Group("/redemptions", middleware.RequireRole(models.RoleVerifier))
		{
			redemptions.POST("/verify", deps.RedemptionHandler.Verify)
			redemptions.POST("", deps.RedemptionHandler.Redeem)
		}

		admin := staff.Group("/admin", middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/prizes", deps.PrizeHandler.CreatePrize)
			admin.PUT("/prizes/:id", deps.PrizeHandler.UpdatePrize)
			admin.DELETE("/prizes/:id", deps.PrizeHandler.DeletePrize)

			admin.GET("/settings", deps.SettingsHandler.GetSettings)
			admin.PUT("/settings", deps.SettingsHandler.UpdateSettings)

			admin.GET("/verifiers", deps.AuthHandler.ListVerifiers)
			admin.POST("/verifiers", deps.AuthHandler.CreateVerifier)
			admin.DELETE("/verifiers/:id", deps.AuthHandler.DeleteVerifier)

			admin.GET("/fraud-alerts", deps.AdminHandler.ListFraudAlerts)
			admin.PUT("/fraud-alerts/:id/reviewed", deps.AdminHandler.MarkAlertReviewed)
			admin.GET("/claims", deps.AdminHandler.ListClaims)
			admin.GET("/stats", deps.AdminHandler.Stats)
			admin.POST("/reset", deps.AdminHandler.ResetPromotion)
		}
	}

	return router
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
