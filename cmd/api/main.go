package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/api/routes"
	"github.com/ArowuTest/sansol-promo-backend/internal/cache"
	"github.com/ArowuTest/sansol-promo-backend/internal/config"
	"github.com/ArowuTest/sansol-promo-backend/internal/handlers"
	"github.com/ArowuTest/sansol-promo-backend/internal/metrics"
	mongorepo "github.com/ArowuTest/sansol-promo-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/ArowuTest/sansol-promo-backend/pkg/fraudcheck"
	"github.com/ArowuTest/sansol-promo-backend/pkg/jwt"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/ArowuTest/sansol-promo-backend/pkg/mongodb"
	"github.com/ArowuTest/sansol-promo-backend/pkg/smsgateway"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	cfg, err := config.Load(".")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New("sansol-promo", logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("error disconnecting from MongoDB")
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	catalogCache := cache.NewNopCatalogCache()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, reveal candidates will be read from MongoDB")
		}
		catalogCache = cache.NewRedisCatalogCache(redisClient, cfg.Redis.CatalogTTL)
	}

	tokens, err := jwt.NewStaffTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		log.WithError(err).Fatal("staff authentication is not configured")
	}
	if cfg.Admin.PasswordHash == "" {
		log.Warn("ADMIN_PASSWORDHASH is empty, the admin account is disabled")
	}

	// Repositories
	prizeRepo := mongorepo.NewPrizeRepository(db)
	winRepo := mongorepo.NewWinRecordRepository(db)
	claimRepo := mongorepo.NewClaimRepository(db)
	participantRepo := mongorepo.NewParticipantRepository(db)
	alertRepo := mongorepo.NewFraudAlertRepository(db)
	verifierRepo := mongorepo.NewVerifierRepository(db)
	settingsRepo := mongorepo.NewSettingsRepository(db)
	passRepo := mongorepo.NewPlayPassRepository(db)

	// Services
	settingsService := services.NewSettingsService(settingsRepo, cfg.Promo.DefaultValidityDays)
	prizeService := services.NewPrizeService(prizeRepo, catalogCache, cfg.Promo.MaxPrizes, log)
	redemptionService := services.NewRedemptionService(prizeRepo, claimRepo, winRepo, settingsService, catalogCache, cfg.Promo.ClaimRetries, log, m)
	checker := fraudcheck.New(fraudcheck.Options{
		BaseURL: cfg.FraudCheck.BaseURL,
		APIKey:  cfg.FraudCheck.APIKey,
		Model:   cfg.FraudCheck.Model,
		Timeout: cfg.FraudCheck.Timeout,
		Mock:    cfg.FraudCheck.MockAPI,
	})
	participantService := services.NewParticipantService(participantRepo, alertRepo, checker, log, m)
	triviaService := services.NewTriviaService(participantRepo, passRepo, services.TriviaOptions{
		QuestionsPerGame: cfg.Promo.QuestionsPerGame,
		QuestionsToWin:   cfg.Promo.QuestionsToWin,
		PassTTL:          cfg.Promo.PlayPassTTL,
	}, log)
	sms := smsgateway.New(smsgateway.Options{
		BaseURL: cfg.SMS.BaseURL,
		APIKey:  cfg.SMS.APIKey,
		Sender:  cfg.SMS.Sender,
		Mock:    cfg.SMS.MockSMSGateway,
	}, log)
	playService := services.NewPlayService(participantRepo, winRepo, passRepo, prizeService, settingsService,
		services.NewRevealEngine(nil), sms, log, m)
	authService := services.NewAuthService(verifierRepo, tokens, cfg.Admin.Username, cfg.Admin.PasswordHash)
	adminService := services.NewAdminService(participantRepo, winRepo, claimRepo, alertRepo, passRepo, prizeRepo, log)

	if err := handlers.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("failed to register request validators")
	}

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		PlayHandler:        handlers.NewPlayHandler(triviaService, playService),
		RedemptionHandler:  handlers.NewRedemptionHandler(redemptionService),
		PrizeHandler:       handlers.NewPrizeHandler(prizeService),
		SettingsHandler:    handlers.NewSettingsHandler(settingsService),
		AdminHandler:       handlers.NewAdminHandler(adminService),
		Tokens:             authService,
		Logger:             log,
		Metrics:            m,
		Gatherer:           registry,
		HealthCheck:        mongoClient.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server exiting")
}
