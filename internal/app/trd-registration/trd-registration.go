// Package trdregistration собирает HTTP‑приложение регистрации пользователей.
package trdregistration

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trd-registration/internal/config"
	"github.com/magabrotheeeer/trd-registration/internal/guard"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/migrations"
	"github.com/magabrotheeeer/trd-registration/internal/objectstore"
	"github.com/magabrotheeeer/trd-registration/internal/rabbitmq"
	"github.com/magabrotheeeer/trd-registration/internal/services/profile"
	"github.com/magabrotheeeer/trd-registration/internal/services/registration"
	"github.com/magabrotheeeer/trd-registration/internal/services/uploader"
	"github.com/magabrotheeeer/trd-registration/internal/services/users"
	"github.com/magabrotheeeer/trd-registration/internal/storage/repository"
	"github.com/magabrotheeeer/trd-registration/internal/validation"
	"github.com/magabrotheeeer/trd-registration/internal/weather"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	redis  *redis.Client
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	app := &App{logger: logger, db: db}

	var submissionGuard guard.Guard
	if cfg.Redis.Address != "" {
		app.redis, err = guard.InitServer(ctx, cfg.Redis)
		if err != nil {
			app.close()
			return nil, err
		}
		submissionGuard = guard.NewRedis(app.redis, cfg.Submission.GuardTTL)
	} else {
		logger.Warn("redis is not configured, submission guard is process local")
		submissionGuard = guard.NewMemory(cfg.Submission.GuardTTL)
	}

	var publisher registration.Publisher
	if cfg.RabbitMQ.URL != "" {
		app.conn, err = rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		app.ch, err = rabbitmq.SetupChannel(app.conn, rabbitmq.RegistrationQueues())
		if err != nil {
			app.close()
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(app.ch)
	}

	store, err := objectstore.New(ctx, cfg.ObjectStorage)
	if err != nil {
		app.close()
		return nil, err
	}

	userService := users.NewService(db, logger)
	uploaderService := uploader.NewService(store, cfg.ObjectStorage.Bucket, cfg.ObjectStorage.CacheControl, logger)
	registrationService := registration.NewService(
		validation.New(),
		uploaderService,
		userService,
		submissionGuard,
		publisher,
		cfg.Submission.RedirectDelay,
		logger,
	)
	profileService := profile.NewService(userService, weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout), cfg.Weather.Wait, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		DB:           db.DB,
		Users:        userService,
		Registration: registrationService,
		Profile:      profileService,
	}, RouteOptions{
		MaxUploadMemory: cfg.HTTPServer.MaxUploadMemory,
		RateLimit:       cfg.Submission.RateLimit,
		RateBurst:       cfg.Submission.RateBurst,
	})

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
