// Package page отдаёт HTML-страницу профиля пользователя.
package page

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/trd-registration/internal/http/handlers/profile/view"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/services/profile"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.page"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	coords := profile.ParseCoordinates(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))

	v, err := h.service.Render(r.Context(), id, coords)
	if err != nil {
		log.Error("failed to render profile", slog.String("id", id), sl.Err(err))
		h.write(w, log, view.StatusFor(err), "error", profile.ErrorMessage(err))
		return
	}

	h.write(w, log, http.StatusOK, "profile", v)
}

func (h *Handler) write(w http.ResponseWriter, log *slog.Logger, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error("failed to execute template", slog.String("template", name), sl.Err(err))
		http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
