package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes-service/internal/application/services"
	"notes-service/internal/config"
	"notes-service/internal/delivery/handler"
	"notes-service/internal/infrastructure"
	"notes-service/internal/infrastructure/db"
	"notes-service/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Environment: cfg.Environment,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		log.Warn().Msg("JWT_SECRET_KEY not set, using an insecure development secret")
		jwtSecret = "dev-only-insecure-secret"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	defer db.Close(gdb)

	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	} else {
		log.Info().Msg("DB_AUTO_MIGRATE disabled, skipping schema migration")
	}

	redisService := infrastructure.NewRedisService(ctx, infrastructure.RedisOptions{
		URL:      cfg.RedisURL,
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, log)
	defer redisService.Close()

	publisher := infrastructure.NewEventPublisher(cfg.NatsURL, log)
	defer publisher.Close()

	mailer := infrastructure.NewMailer(infrastructure.MailerOptions{
		Provider: cfg.EmailProvider,
		APIKey:   cfg.EmailAPIKey,
		Sender:   cfg.EmailSender,
	}, log)

	loginLimiter := infrastructure.NewRateLimiter(cfg.LoginRateWindow, cfg.LoginMaxAttempts)
	go loginLimiter.Run(ctx, time.Minute)

	noteRepo := db.NewNoteRepository(gdb)
	tagRepo := db.NewTagRepository(gdb)
	userRepo := db.NewUserRepository(gdb)

	h := handler.NewHandler(
		services.NewNoteService(noteRepo, tagRepo, mailer, publisher, log),
		services.NewUserService(userRepo, redisService, infrastructure.NewJWTService(jwtSecret, cfg.JWTExpiry), loginLimiter, log),
		services.NewTagService(tagRepo),
	)
	e := handler.NewServer(h, handler.ServerConfig{
		RateLimit: handler.RateLimitConfig{RPS: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
		Logger:    log,
	})

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Environment).Msg("server starting")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
