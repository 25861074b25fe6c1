// Package saveuser реализует HTTP-обработчик шлюза хранения для создания записи
// пользователя (POST /api/save-user).
//
// Тело запроса передаётся в хранилище как есть: проверку выполняют ограничения
// таблицы, и их сообщение возвращается клиенту с кодом 400.
package saveuser

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trd-registration/internal/http/response"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
)

// MsgProcessing — префикс сообщения о непредвиденной ошибке.
const MsgProcessing = "Error al procesar la solicitud "

// Service описывает создание записи пользователя.
type Service interface {
	Create(ctx context.Context, user models.UserRecord) (*models.UserRecord, error)
}

// Handler обрабатывает запросы на сохранение записи пользователя.
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
// @Summary Сохранить пользователя
// @Description Создаёт запись пользователя и возвращает её вместе с назначенным идентификатором.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.UserRecord true "Запись пользователя"
// @Success 200 {object} models.UserRecord
// @Failure 400 {object} response.GatewayError "Хранилище отклонило запись"
// @Failure 500 {object} response.GatewayError "Ошибка обработки запроса"
// @Router /api/save-user [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.saveuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UserRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Gateway(MsgProcessing+err.Error()))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		var storeErr *models.StoreError
		if errors.As(err, &storeErr) {
			log.Warn("store rejected user", slog.String("code", storeErr.Code), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Gateway(storeErr.Message))
			return
		}
		log.Error("failed to save user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Gateway(MsgProcessing+err.Error()))
		return
	}

	log.Info("user saved", slog.String("id", user.ID))
	render.JSON(w, r, user)
}
