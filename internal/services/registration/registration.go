// Package registration проводит отправку формы регистрации:
// проверка полей, загрузка фотографий, сохранение записи и переход на профиль.
//
// Пока отправка идёт, её ключ (тип и номер документа) находится в состоянии
// Submitting; повторная отправка того же ключа получает ErrInProgress.
// После сохранения ключ переходит в Navigating на время задержки перехода,
// которую клиент выдерживает сам: сервис не ждёт.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trd-registration/internal/guard"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/metrics"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/services/uploader"
	"github.com/magabrotheeeer/trd-registration/internal/validation"
)

var (
	// ErrInProgress — отправка с тем же документом ещё выполняется.
	ErrInProgress = errors.New("submission already in progress")
	// ErrUpload — не удалось загрузить фотографии; запись не создана.
	ErrUpload = errors.New("photo upload failed")
)

// ValidationError содержит ошибки полей формы.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

// Validator проверяет черновик формы.
type Validator interface {
	Validate(draft models.Draft) (models.UserRecord, validation.FieldErrors)
}

// Uploader загружает фотографии и возвращает их адреса.
type Uploader interface {
	Upload(ctx context.Context, files []models.PhotoFile, progress uploader.ProgressFunc) ([]string, error)
}

// Users создаёт запись пользователя.
type Users interface {
	Create(ctx context.Context, user models.UserRecord) (*models.UserRecord, error)
}

// Publisher публикует событие о новой регистрации.
type Publisher interface {
	PublishRegistered(ctx context.Context, event models.RegistrationEvent) error
}

// NoopPublisher используется, когда брокер не настроен.
type NoopPublisher struct{}

func (NoopPublisher) PublishRegistered(context.Context, models.RegistrationEvent) error { return nil }

// Result — итог успешной отправки.
type Result struct {
	User          *models.UserRecord
	ProfilePath   string
	RedirectAfter time.Duration
}

// Service проводит отправку формы.
type Service struct {
	validator     Validator
	uploader      Uploader
	users         Users
	guard         guard.Guard
	publisher     Publisher
	redirectDelay time.Duration
	log           *slog.Logger
}

// NewService создаёт Service. publisher может быть nil.
func NewService(
	validator Validator,
	uploader Uploader,
	users Users,
	g guard.Guard,
	publisher Publisher,
	redirectDelay time.Duration,
	log *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{
		validator:     validator,
		uploader:      uploader,
		users:         users,
		guard:         g,
		publisher:     publisher,
		redirectDelay: redirectDelay,
		log:           log,
	}
}

// Validate возвращает текущие ошибки полей черновика.
func (s *Service) Validate(draft models.Draft) validation.FieldErrors {
	_, fields := s.validator.Validate(draft)
	return fields
}

// State возвращает состояние отправки для документа.
func (s *Service) State(ctx context.Context, documentType, docNumber string) (guard.State, error) {
	const op = "services.registration.State"
	state, err := s.guard.State(ctx, guard.Key(documentType, docNumber))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

// Submit проверяет черновик, загружает фотографии и сохраняет запись.
func (s *Service) Submit(ctx context.Context, draft models.Draft, progress uploader.ProgressFunc) (*Result, error) {
	const op = "services.registration.Submit"
	log := s.log.With(slog.String("op", op))

	record, fields := s.validator.Validate(draft)
	if fields != nil {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return nil, &ValidationError{Fields: fields}
	}

	key := guard.Key(record.DocumentType, record.DocNumber)
	acquired, err := s.guard.Acquire(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !acquired {
		metrics.RecordSubmission(metrics.OutcomeInProgress)
		log.Warn("submission already in progress", slog.String("key", key))
		return nil, ErrInProgress
	}
	log.Debug("submitting", slog.String("key", key), slog.Int("photos", len(draft.Photos)))

	user, err := s.submit(ctx, record, draft.Photos, progress)
	if err != nil {
		if relErr := s.guard.Release(context.WithoutCancel(ctx), key); relErr != nil {
			log.Error("failed to release submission key", slog.String("key", key), sl.Err(relErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.guard.MarkNavigating(ctx, key, s.redirectDelay); err != nil {
		log.Warn("failed to mark submission as navigating", slog.String("key", key), sl.Err(err))
	}
	metrics.RecordSubmission(metrics.OutcomeCreated)

	s.publish(ctx, log, user)

	return &Result{
		User:          user,
		ProfilePath:   ProfilePath(user.ID),
		RedirectAfter: s.redirectDelay,
	}, nil
}

func (s *Service) submit(ctx context.Context, record models.UserRecord, photos []models.PhotoFile, progress uploader.ProgressFunc) (*models.UserRecord, error) {
	urls, err := s.uploader.Upload(ctx, photos, progress)
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeUpload)
		s.log.Error("failed to upload photos", sl.Err(err))
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	record.Photos = urls
	s.log.Debug("payload assembled", slog.Any("user", record))

	user, err := s.users.Create(ctx, record)
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeStore)
		s.log.Error("failed to create user", sl.Err(err))
		return nil, err
	}
	return user, nil
}

func (s *Service) publish(ctx context.Context, log *slog.Logger, user *models.UserRecord) {
	err := s.publisher.PublishRegistered(ctx, models.RegistrationEvent{
		UserID:    user.ID,
		Name:      user.Name,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues("failed").Inc()
		log.Error("failed to publish registration event", slog.String("id", user.ID), sl.Err(err))
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}

// ProfilePath возвращает путь страницы профиля.
func ProfilePath(id string) string {
	return "/profile/" + id
}
