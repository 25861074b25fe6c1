// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков.
//
// Эндпоинты /api/v1 отвечают в едином формате Response (status, error, data).
// Шлюз хранения (/api/get-user, /api/save-user) отдаёт запись как есть,
// а ошибки — в виде {"error": "..."}; для этого служит GatewayError.
package response

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Data   any               `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// GatewayError — тело ошибки эндпоинтов шлюза хранения.
type GatewayError struct {
	Error string `json:"error" example:"ID de usuario no proporcionado"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError возвращает Response с сообщениями валидации по полям.
func ValidationError(fields map[string]string) Response {
	return Response{
		Status: StatusError,
		Error:  "validation failed",
		Fields: fields,
	}
}

// Gateway возвращает тело ошибки шлюза хранения.
func Gateway(msg string) GatewayError {
	return GatewayError{Error: msg}
}
