// Package state отдаёт состояние отправки формы для документа:
// idle, submitting или navigating.
package state

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trd-registration/internal/guard"
	"github.com/magabrotheeeer/trd-registration/internal/http/response"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
)

type Service interface {
	State(ctx context.Context, documentType, docNumber string) (guard.State, error)
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
// @Summary Состояние отправки
// @Tags Registrations
// @Produce  json
// @Param document_type query string true "Тип документа"
// @Param doc_number query string true "Номер документа"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/registrations/state [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.state"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	documentType := r.URL.Query().Get("document_type")
	docNumber := r.URL.Query().Get("doc_number")
	if documentType == "" || docNumber == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("document_type and doc_number are required"))
		return
	}

	st, err := h.service.State(r.Context(), documentType, docNumber)
	if err != nil {
		log.Error("failed to get submission state", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get submission state"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"state": st,
	}))
}
