package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rgonzalez7/elias-portfolio/internal/config"
	"github.com/Rgonzalez7/elias-portfolio/internal/feedback"
	internalhttp "github.com/Rgonzalez7/elias-portfolio/internal/http"
	"github.com/Rgonzalez7/elias-portfolio/internal/logger"
	"github.com/Rgonzalez7/elias-portfolio/internal/mailer"
	"github.com/Rgonzalez7/elias-portfolio/internal/ratelimit"
	"github.com/Rgonzalez7/elias-portfolio/internal/repository"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.New(0).Fatal("config load failed", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store repository.Users = repository.NewMemory()
	if cfg.DatabaseURL != "" {
		if err := repository.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal("migrations failed", "error", err)
		}
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db connection failed", "error", err)
		}
		defer pool.Close()
		store = repository.NewPostgres(pool)
		log.Info("using postgres user store")
	} else {
		log.Info("using in-memory user store, accounts are lost on restart")
	}

	var generator feedback.Generator = feedback.NewMock()
	if cfg.AI.APIKey != "" {
		generator = feedback.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout)
		log.Info("ai feedback in live mode", "model", cfg.AI.Model)
	} else {
		log.Info("ai feedback in mock mode")
	}

	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("redis ping failed", "error", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("redis close error", "error", err)
			}
		}()
		limiter = ratelimit.New(redisClient, cfg.Contact.RateWindow, cfg.Contact.RateMax)
	}

	mail := mailer.New(mailer.NewResend(cfg.Contact.ResendAPIKey), cfg.Contact.FromEmail, cfg.Contact.ToEmail, cfg.Contact.SendAutoReply)

	server := internalhttp.NewServer(*cfg, store, generator, mail, limiter, log)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("portfolio server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server error", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
