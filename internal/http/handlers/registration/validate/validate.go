// Package validate отдаёт текущие ошибки полей черновика формы,
// чтобы клиент мог проверять форму при каждом изменении поля.
package validate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trd-registration/internal/http/response"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/validation"
)

// Service описывает проверку черновика.
type Service interface {
	Validate(draft models.Draft) validation.FieldErrors
}

// Result — итог проверки.
type Result struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields"`
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
// @Summary Проверить черновик формы
// @Description Возвращает ошибки полей; фотографии передаются метаданными (name, type, size).
// @Tags Registrations
// @Accept  json
// @Produce  json
// @Param request body models.Draft true "Черновик формы"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Router /api/v1/registrations/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	fields := h.service.Validate(draft)
	if fields == nil {
		fields = validation.FieldErrors{}
	}
	render.JSON(w, r, response.OKWithData(Result{
		Valid:  len(fields) == 0,
		Fields: fields,
	}))
}
