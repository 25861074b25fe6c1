package models

import "errors"

var (
	// ErrUserNotFound возвращается, когда запись с указанным ID отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrIDNotProvided возвращается, когда идентификатор не передан.
	ErrIDNotProvided = errors.New("user id not provided")
)

// StoreError — ошибка, о которой сообщило само хранилище (нарушение ограничения,
// неверный ввод и т.п.). Message передаётся клиенту как есть.
type StoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
