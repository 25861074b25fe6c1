package validate

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/validation"
)

type registrationValidator struct {
	v *validation.Validator
}

func (r registrationValidator) Validate(d models.Draft) validation.FieldErrors {
	_, fields := r.v.Validate(d)
	return fields
}

func TestValidateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(logger, registrationValidator{validation.New()})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "корректный черновик",
			body: `{"name":"María","last_name":"Pérez","document_type":"DNI","doc_number":"12345678",` +
				`"email":"maria@example.com","phone_number":"+593991234567"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"valid":true,"fields":{}}}`,
		},
		{
			name: "слишком много фотографий",
			body: `{"name":"María","last_name":"Pérez","document_type":"DNI","doc_number":"12345678",` +
				`"email":"maria@example.com","phone_number":"+593991234567","photos":[` +
				`{"name":"1.jpg","type":"image/jpeg","size":1},{"name":"2.jpg","type":"image/jpeg","size":1},` +
				`{"name":"3.jpg","type":"image/jpeg","size":1},{"name":"4.jpg","type":"image/jpeg","size":1},` +
				`{"name":"5.jpg","type":"image/jpeg","size":1}]}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"valid":false,"fields":{"photos":"Puedes subir hasta 4 imágenes"}}}`,
		},
		{
			name:           "пустой черновик",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			expectedBody:   "",
		},
		{
			name:           "некорректный JSON",
			body:           `{oops`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/validate", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"valid":false`)
				assert.Contains(t, w.Body.String(), `"name":"El nombre es requerido"`)
			}
		})
	}
}
