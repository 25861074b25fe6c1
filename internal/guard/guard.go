// Package guard не даёт отправить одну и ту же форму регистрации дважды,
// пока первая отправка ещё выполняется или клиент уходит на страницу профиля.
//
// Ключ отправки — "document_type:doc_number". Состояние хранится в redis
// (SETNX с TTL) либо, если redis не настроен, в памяти процесса.
package guard

import (
	"context"
	"errors"
	"time"
)

// State — состояние отправки формы.
type State string

const (
	// Idle — отправка не выполняется.
	Idle State = "idle"
	// Submitting — идёт загрузка фотографий и сохранение записи.
	Submitting State = "submitting"
	// Navigating — запись сохранена, клиент переходит на страницу профиля.
	Navigating State = "navigating"
)

// ErrNotHeld возвращается, когда ключ не захвачен.
var ErrNotHeld = errors.New("submission key is not held")

// Guard управляет состоянием отправки по ключу.
type Guard interface {
	// Acquire переводит ключ из Idle в Submitting. false означает, что ключ уже занят.
	Acquire(ctx context.Context, key string) (bool, error)
	// MarkNavigating переводит занятый ключ в Navigating на время d.
	MarkNavigating(ctx context.Context, key string, d time.Duration) error
	// Release возвращает ключ в Idle.
	Release(ctx context.Context, key string) error
	// State возвращает текущее состояние ключа.
	State(ctx context.Context, key string) (State, error)
}

// Key строит ключ отправки по документу пользователя.
func Key(documentType, docNumber string) string {
	return documentType + ":" + docNumber
}
