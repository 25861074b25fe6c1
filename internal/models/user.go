// Package models содержит доменную модель зарегистрированного пользователя,
// черновик формы регистрации и вспомогательные типы профиля.
// Структуры используются в бизнес‑логике, в хранилище и при работе с JSON‑запросами.
package models

import (
	"io"
	"time"
)

// DocumentTypes — закрытый перечень допустимых типов документа.
var DocumentTypes = []string{
	"RUC",
	"DNI",
	"Pasaporte",
	"Cedula de Identidad",
	"Licencia de Conducir",
}

// IsDocumentType сообщает, входит ли значение в перечень DocumentTypes.
func IsDocumentType(v string) bool {
	for _, t := range DocumentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// UserRecord представляет сохранённую запись пользователя.
// ID и CreatedAt назначаются хранилищем при создании и больше не меняются.
type UserRecord struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	LastName           string    `json:"last_name"`
	DocumentType       string    `json:"document_type"`
	DocNumber          string    `json:"doc_number"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phone_number"`
	Photos             []string  `json:"photos"`
	UseSameBillingData bool      `json:"use_same_billing_data"`
	CreatedAt          time.Time `json:"created_at"`
}

// PhotoFile описывает выбранный пользователем файл изображения.
// Content отсутствует, когда проверяются только метаданные (живая валидация формы).
type PhotoFile struct {
	Name        string    `json:"name"`
	ContentType string    `json:"type" validate:"image"`
	Size        int64     `json:"size" validate:"max=2097152"`
	Content     io.Reader `json:"-"`
}

// Draft — черновик формы регистрации до валидации.
type Draft struct {
	Name               string      `json:"name" validate:"required,min=2"`
	LastName           string      `json:"last_name" validate:"required,min=2"`
	DocumentType       string      `json:"document_type" validate:"required,doctype"`
	DocNumber          string      `json:"doc_number" validate:"required,min=8"`
	Email              string      `json:"email" validate:"required,email"`
	PhoneNumber        string      `json:"phone_number" validate:"required,phone"`
	Photos             []PhotoFile `json:"photos" validate:"omitempty,max=4,dive"`
	UseSameBillingData bool        `json:"use_same_billing_data"`
}

// Record переносит поля черновика в запись пользователя без фотографий:
// ссылки на фотографии появляются только после загрузки в хранилище объектов.
func (d Draft) Record() UserRecord {
	return UserRecord{
		Name:               d.Name,
		LastName:           d.LastName,
		DocumentType:       d.DocumentType,
		DocNumber:          d.DocNumber,
		Email:              d.Email,
		PhoneNumber:        d.PhoneNumber,
		Photos:             []string{},
		UseSameBillingData: d.UseSameBillingData,
	}
}

// RegistrationEvent публикуется в очередь после успешного создания записи.
type RegistrationEvent struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
