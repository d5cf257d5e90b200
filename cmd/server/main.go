package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/reviewhub/review-platform/internal/api"
	"github.com/reviewhub/review-platform/internal/infrastructure/config"
	mongodb "github.com/reviewhub/review-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/reviewhub/review-platform/internal/infrastructure/db/redis"
	"github.com/reviewhub/review-platform/internal/infrastructure/mail"
	"github.com/reviewhub/review-platform/internal/infrastructure/queue"
	"github.com/reviewhub/review-platform/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "review-platform",
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Outbound mail ---
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	mailQueue := queue.NewMailDispatcher(cfg.MailWorkers, mailer, log)
	mailQueue.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, mailer, mailQueue, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
