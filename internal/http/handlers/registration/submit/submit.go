// Package submit реализует HTTP-обработчик отправки формы регистрации.
//
// Handler принимает multipart/form-data с полями формы и файлами photos,
// передаёт черновик сервису регистрации и возвращает созданную запись,
// путь страницы профиля и задержку перед переходом.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trd-registration/internal/http/response"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/services/registration"
	"github.com/magabrotheeeer/trd-registration/internal/services/uploader"
)

const (
	msgInvalidForm = "invalid multipart form"
	msgInProgress  = "Ya hay un registro en curso para este documento"
	msgUpload      = "No se pudieron subir las fotos"
)

// MsgInternal — сообщение о непредвиденной ошибке эндпоинтов /api/v1.
const MsgInternal = "Error al procesar la solicitud"

// Service описывает отправку формы.
type Service interface {
	Submit(ctx context.Context, draft models.Draft, progress uploader.ProgressFunc) (*registration.Result, error)
}

// Result — тело успешного ответа.
type Result struct {
	ID              string             `json:"id"`
	ProfileURL      string             `json:"profile_url"`
	RedirectAfterMs int64              `json:"redirect_after_ms"`
	User            *models.UserRecord `json:"user"`
}

// Handler обрабатывает отправку формы регистрации.
type Handler struct {
	log       *slog.Logger
	service   Service
	maxMemory int64
}

// New создает Handler. maxMemory — часть формы, которая держится в памяти.
func New(log *slog.Logger, service Service, maxMemory int64) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		maxMemory: maxMemory,
	}
}

// ServeHTTP godoc
// @Summary Отправить форму регистрации
// @Description Проверяет поля, загружает до четырёх фотографий и создаёт запись пользователя.
// @Description Клиент переходит на profile_url через redirect_after_ms миллисекунд.
// @Tags Registrations
// @Accept  multipart/form-data
// @Produce  json
// @Param name formData string true "Имя"
// @Param last_name formData string true "Фамилия"
// @Param document_type formData string true "Тип документа"
// @Param doc_number formData string true "Номер документа"
// @Param email formData string true "Email"
// @Param phone_number formData string true "Телефон"
// @Param use_same_billing_data formData boolean false "Платёжные данные совпадают с личными"
// @Param photos formData file false "Фотографии (до 4)"
// @Success 201 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Некорректная форма или отказ хранилища"
// @Failure 409 {object} response.ErrorResponse "Отправка уже выполняется"
// @Failure 422 {object} response.Response "Ошибки полей"
// @Failure 502 {object} response.ErrorResponse "Не удалось загрузить фотографии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/v1/registrations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.registration.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msgInvalidForm))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	draft, closeFiles, err := draftFromForm(r.MultipartForm)
	defer closeFiles()
	if err != nil {
		log.Error("failed to open photo", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msgInvalidForm))
		return
	}

	res, err := h.service.Submit(r.Context(), draft, func(done, total int) {
		log.Debug("upload progress", slog.Int("done", done), slog.Int("total", total))
	})
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("registration submitted", slog.String("id", res.User.ID))
	w.Header().Set("Location", res.ProfilePath)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(Result{
		ID:              res.User.ID,
		ProfileURL:      res.ProfilePath,
		RedirectAfterMs: res.RedirectAfter.Milliseconds(),
		User:            res.User,
	}))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		verr     *registration.ValidationError
		storeErr *models.StoreError
	)
	switch {
	case errors.As(err, &verr):
		log.Info("validation failed", slog.Any("fields", verr.Fields))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verr.Fields))
	case errors.Is(err, registration.ErrInProgress):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(msgInProgress))
	case errors.Is(err, registration.ErrUpload):
		log.Error("photo upload failed", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error(msgUpload))
	case errors.As(err, &storeErr):
		log.Warn("store rejected registration", slog.String("code", storeErr.Code), sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(storeErr.Message))
	default:
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(MsgInternal))
	}
}

// draftFromForm собирает черновик из полей формы и открывает файлы photos.
// Возвращаемая функция закрывает открытые файлы.
func draftFromForm(form *multipart.Form) (models.Draft, func(), error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	draft := models.Draft{
		Name:               value("name"),
		LastName:           value("last_name"),
		DocumentType:       value("document_type"),
		DocNumber:          value("doc_number"),
		Email:              value("email"),
		PhoneNumber:        value("phone_number"),
		UseSameBillingData: parseBool(value("use_same_billing_data")),
	}

	var opened []multipart.File
	closeFiles := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fh := range form.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			return draft, closeFiles, err
		}
		opened = append(opened, f)
		draft.Photos = append(draft.Photos, models.PhotoFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}
	return draft, closeFiles, nil
}

func parseBool(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
