package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/trd-registration/internal/models"
)

const userColumns = `id, name, last_name, document_type, doc_number, email,
			      phone_number, photos, use_same_billing_data, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.UserRecord, error) {
	var (
		u      models.UserRecord
		photos []byte
	)
	if err := row.Scan(&u.ID, &u.Name, &u.LastName, &u.DocumentType, &u.DocNumber,
		&u.Email, &u.PhoneNumber, &photos, &u.UseSameBillingData, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Photos = []string{}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &u.Photos); err != nil {
			return nil, fmt.Errorf("decode photos: %w", err)
		}
	}
	return &u, nil
}

// CreateUser вставляет одну запись и возвращает её целиком вместе с
// назначенными хранилищем id и created_at.
func (s *Storage) CreateUser(ctx context.Context, user models.UserRecord) (*models.UserRecord, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	photos := user.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO users (name, last_name, document_type, doc_number, email,
			      phone_number, photos, use_same_billing_data)
			  VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query,
		user.Name, user.LastName, user.DocumentType, user.DocNumber, user.Email,
		user.PhoneNumber, string(photosJSON), user.UseSameBillingData)

	created, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return created, nil
}

// GetUser возвращает ровно одну запись по её идентификатору.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.UserRecord, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return u, nil
}
