package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitacare/hospital-api/internal/config"
	accountHandler "github.com/vitacare/hospital-api/internal/handler/account"
	adminHandler "github.com/vitacare/hospital-api/internal/handler/admin"
	appointmentHandler "github.com/vitacare/hospital-api/internal/handler/appointment"
	authHandler "github.com/vitacare/hospital-api/internal/handler/auth"
	doctorHandler "github.com/vitacare/hospital-api/internal/handler/doctor"
	doctorRequestHandler "github.com/vitacare/hospital-api/internal/handler/doctorrequest"
	messageHandler "github.com/vitacare/hospital-api/internal/handler/message"
	"github.com/vitacare/hospital-api/internal/middleware"
	"github.com/vitacare/hospital-api/internal/repository/postgres"
	"github.com/vitacare/hospital-api/internal/router"
	accountService "github.com/vitacare/hospital-api/internal/service/account"
	approvalService "github.com/vitacare/hospital-api/internal/service/approval"
	authService "github.com/vitacare/hospital-api/internal/service/auth"
	bookingService "github.com/vitacare/hospital-api/internal/service/booking"
	messageService "github.com/vitacare/hospital-api/internal/service/message"
	"github.com/vitacare/hospital-api/pkg/auth"
	"github.com/vitacare/hospital-api/pkg/messaging/redis"
	"github.com/vitacare/hospital-api/pkg/metrics"
	"github.com/vitacare/hospital-api/pkg/security"
	"github.com/vitacare/hospital-api/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	uploader, err := storage.NewMinioUploader(context.Background(), storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
		BaseURL:   cfg.Storage.BaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	m := metrics.NewMetrics("hospital_api")

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	doctorRequestRepo := postgres.NewDoctorRequestRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(accountRepo, jwtSvc, hasher)
	accountSvc := accountService.NewService(accountRepo, appointmentRepo, uploader)
	bookingSvc := bookingService.NewService(appointmentRepo, accountRepo, broker, m)
	approvalSvc := approvalService.NewService(doctorRequestRepo, accountRepo, uploader, broker, m)
	messageSvc := messageService.NewService(messageRepo)

	// Handlers
	authH := authHandler.NewHandler(authSvc, cfg.Server.SecureCookies)
	accountH := accountHandler.NewHandler(accountSvc, cfg.Assistant.APIKey)
	appointmentH := appointmentHandler.NewHandler(bookingSvc)
	doctorH := doctorHandler.NewHandler(accountSvc)
	doctorRequestH := doctorRequestHandler.NewHandler(approvalSvc)
	adminH := adminHandler.NewHandler(approvalSvc, messageSvc, accountSvc)
	messageH := messageHandler.NewHandler(messageSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
		corsCfg.AllowCredentials = true
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		authH.Protected(),
		[]router.Handler{doctorH, messageH},
		[]router.Handler{accountH, appointmentH, doctorRequestH},
		adminH,
		m,
		router.Config{
			RateLimit:  cfg.RateLimit.RequestsPerSecond,
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: corsCfg,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
