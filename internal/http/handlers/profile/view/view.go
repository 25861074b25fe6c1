// Package view отдаёт данные страницы профиля в JSON.
package view

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trd-registration/internal/http/response"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/services/profile"
)

// Service описывает сборку страницы профиля.
type Service interface {
	Render(ctx context.Context, id string, coords *models.Coordinates) (*profile.View, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает данные страницы профиля. При переданных lat и lon добавляется текущая погода.
// @Tags Profile
// @Produce  json
// @Param id path string true "Идентификатор пользователя"
// @Param lat query number false "Широта"
// @Param lon query number false "Долгота"
// @Success 200 {object} response.Response{data=profile.View}
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /api/v1/profile/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.view"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	coords := profile.ParseCoordinates(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))

	v, err := h.service.Render(r.Context(), id, coords)
	if err != nil {
		log.Error("failed to render profile", slog.String("id", id), sl.Err(err))
		render.Status(r, StatusFor(err))
		render.JSON(w, r, response.Error(profile.ErrorMessage(err)))
		return
	}

	render.JSON(w, r, response.OKWithData(v))
}

// StatusFor возвращает HTTP-статус ошибки загрузки профиля.
func StatusFor(err error) int {
	var storeErr *models.StoreError
	if errors.Is(err, models.ErrUserNotFound) || errors.As(err, &storeErr) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
