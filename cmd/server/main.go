// @title           LinkedIn Clone API
// @version         1.0
// @description     Authentication, profiles and preferences for the LinkedIn clone.
// @BasePath        /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeep2351/linkedin-clone/internal/api"
	"github.com/sandeep2351/linkedin-clone/internal/api/handler"
	"github.com/sandeep2351/linkedin-clone/internal/core/ports"
	"github.com/sandeep2351/linkedin-clone/internal/core/service"
	"github.com/sandeep2351/linkedin-clone/internal/infrastructure/db/memory"
	mongostore "github.com/sandeep2351/linkedin-clone/internal/infrastructure/db/mongo"
	redisstore "github.com/sandeep2351/linkedin-clone/internal/infrastructure/db/redis"
	"github.com/sandeep2351/linkedin-clone/internal/infrastructure/mail"
	"github.com/sandeep2351/linkedin-clone/internal/infrastructure/queue"
	"github.com/sandeep2351/linkedin-clone/internal/pkg/config"
	"github.com/sandeep2351/linkedin-clone/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "linkedin-clone-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := map[string]handler.Check{}

	var repo ports.UserRepository
	var postRepo ports.PostRepository
	switch cfg.Store {
	case "memory":
		log.Warn().Msg("using in-memory store, data is lost on restart")
		repo = memory.NewUserRepository()
		postRepo = memory.NewPostRepository()
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "linkedin-clone-api",
		})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		users := mongostore.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			return err
		}
		posts := mongostore.NewPostRepository(db)
		if err := posts.EnsureIndexes(ctx); err != nil {
			return err
		}
		repo, postRepo = users, posts
		checks["mongodb"] = mongostore.PingCheck(db)
	}

	// Redis only backs the welcome-once marker; the service runs without it.
	var claimer queue.Claimer
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, welcome messages are not deduplicated")
	} else {
		defer rdb.Close()
		claimer = redisstore.NewWelcomeMarker(rdb)
		checks["redis"] = redisstore.PingCheck(rdb)
	}

	mailer := mail.New(mail.Config{
		Addr:     cfg.Mail.SMTPAddr,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, log)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, mailer, claimer, log)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	tokens := service.NewTokenService(repo, cfg.JWTSecret, service.WithTTL(cfg.TokenTTL))
	e := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(repo, tokens, log),
		Tokens:    tokens,
		Users:     service.NewUserService(repo, log),
		Posts:     service.NewPostService(postRepo, repo, log),
		Notifier:  dispatcher,
		Checks:    checks,
		BasePath:  cfg.BasePath,
		ClientURL: cfg.ClientURL,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
