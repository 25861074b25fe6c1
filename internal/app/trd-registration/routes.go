package trdregistration

import (
	"fmt"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/health"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/profile/page"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/profile/view"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/registration/state"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/registration/submit"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/registration/validate"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/users/getuser"
	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/users/saveuser"
	"github.com/magabrotheeeer/trd-registration/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trd-registration/internal/http/response"
)

// Services — зависимости обработчиков.
type Services struct {
	DB    health.Pinger
	Users interface {
		getuser.Service
		saveuser.Service
	}
	Registration interface {
		submit.Service
		validate.Service
		state.Service
	}
	Profile view.Service
}

// RouteOptions — ограничения входящих запросов.
type RouteOptions struct {
	MaxUploadMemory int64
	RateLimit       float64
	RateBurst       int
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services Services, opts RouteOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.URLFormat,
		middlewarectx.PrometheusMiddleware,
	)

	r.Get("/health", health.New(logger, services.DB).ServeHTTP)

	// Шлюз записей пользователей
	r.With(middlewarectx.JSONRecoverer(logger, func(any) any {
		return response.Gateway(getuser.MsgInternal)
	})).Get("/api/get-user", getuser.New(logger, services.Users).ServeHTTP)

	r.With(
		middlewarectx.RateLimitMiddleware(logger, opts.RateLimit, opts.RateBurst),
		middlewarectx.JSONRecoverer(logger, func(rec any) any {
			return response.Gateway(saveuser.MsgProcessing + fmt.Sprint(rec))
		}),
	).Post("/api/save-user", saveuser.New(logger, services.Users).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.JSONRecoverer(logger, func(any) any {
			return response.Error(submit.MsgInternal)
		}))

		r.With(middlewarectx.RateLimitMiddleware(logger, opts.RateLimit, opts.RateBurst)).
			Post("/registrations", submit.New(logger, services.Registration, opts.MaxUploadMemory).ServeHTTP)
		r.Post("/registrations/validate", validate.New(logger, services.Registration).ServeHTTP)
		r.Get("/registrations/state", state.New(logger, services.Registration).ServeHTTP)
		r.Get("/profile/{id}", view.New(logger, services.Profile).ServeHTTP)
	})

	// HTML-страница: паника отдаёт обычный 500 chi
	r.With(middleware.Recoverer).Get("/profile/{id}", page.New(logger, services.Profile).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
