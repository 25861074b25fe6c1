// Package users реализует шлюз хранения записей пользователей: создание записи
// и получение записи по идентификатору. Вызовы идут напрямую в хранилище,
// без кеширования и повторных попыток.
package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/trd-registration/internal/models"
)

// Repository определяет методы работы с записями пользователей в хранилище.
type Repository interface {
	CreateUser(ctx context.Context, user models.UserRecord) (*models.UserRecord, error)
	GetUser(ctx context.Context, id string) (*models.UserRecord, error)
}

// Service реализует операции Create и FetchByID.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет одну запись и возвращает её вместе с назначенным идентификатором.
// Ошибки, о которых сообщило хранилище, возвращаются как *models.StoreError.
func (s *Service) Create(ctx context.Context, user models.UserRecord) (*models.UserRecord, error) {
	const op = "services.users.Create"

	s.log.Debug("creating user", slog.String("op", op), slog.Any("user", user))

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user created", slog.String("op", op), slog.String("id", created.ID))
	return created, nil
}

// FetchByID возвращает запись по идентификатору.
// Пустой идентификатор даёт models.ErrIDNotProvided без обращения к хранилищу.
func (s *Service) FetchByID(ctx context.Context, id string) (*models.UserRecord, error) {
	const op = "services.users.FetchByID"

	if id == "" {
		return nil, models.ErrIDNotProvided
	}

	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
