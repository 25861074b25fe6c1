// Package getuser реализует HTTP-обработчик шлюза хранения для получения записи
// пользователя по идентификатору (GET /api/get-user?id=).
package getuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trd-registration/internal/http/response"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
)

const (
	msgIDNotProvided = "ID de usuario no proporcionado"
	msgFetchFailed   = "Error al obtener el usuario"
	// MsgInternal — сообщение для непредвиденных сбоев обработчика.
	MsgInternal = "Error interno del servidor"
)

// Service описывает получение записи по идентификатору.
type Service interface {
	FetchByID(ctx context.Context, id string) (*models.UserRecord, error)
}

// Handler обрабатывает запросы на получение записи пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить пользователя
// @Description Возвращает сохранённую запись пользователя по идентификатору.
// @Tags Users
// @Produce  json
// @Param id query string true "Идентификатор пользователя"
// @Success 200 {object} models.UserRecord
// @Failure 400 {object} response.GatewayError "ID не передан"
// @Failure 500 {object} response.GatewayError "Ошибка хранилища"
// @Router /api/get-user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.getuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := r.URL.Query().Get("id")
	if id == "" {
		log.Warn("user id not provided")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Gateway(msgIDNotProvided))
		return
	}

	user, err := h.service.FetchByID(r.Context(), id)
	if errors.Is(err, models.ErrIDNotProvided) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Gateway(msgIDNotProvided))
		return
	}
	if err != nil {
		log.Error("failed to fetch user", slog.String("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Gateway(msgFetchFailed))
		return
	}

	log.Info("user fetched", slog.String("id", user.ID))
	render.JSON(w, r, user)
}
