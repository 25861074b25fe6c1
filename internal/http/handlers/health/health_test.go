package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		expectedBody   string
	}{
		{"без хранилища", nil, http.StatusOK, `{"status":"OK","data":{"status":"ok"}}`},
		{"хранилище доступно", pingFunc(func(context.Context) error { return nil }), http.StatusOK, `{"status":"OK","data":{"status":"ok"}}`},
		{"хранилище недоступно", pingFunc(func(context.Context) error { return errors.New("down") }), http.StatusServiceUnavailable, `{"status":"Error","error":"storage is unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			New(logger, tt.db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
