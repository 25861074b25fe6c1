package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/services/profile"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Render(ctx context.Context, id string, coords *models.Coordinates) (*profile.View, error) {
	args := m.Called(ctx, id, coords)
	if res := args.Get(0); res != nil {
		return res.(*profile.View), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc Service, url, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)
	return w
}

func TestPage_MirroredBilling(t *testing.T) {
	svc := new(MockService)
	user := &models.UserRecord{
		ID: "3f1c", Name: "María", LastName: "Pérez", DocumentType: "DNI", DocNumber: "12345678",
		Email: "maria@example.com", PhoneNumber: "+593991234567",
		Photos: []string{"https://cdn/a.jpg"}, UseSameBillingData: true,
	}
	v := profile.Build(user)
	v.Weather = &models.WeatherSnapshot{Temperature: 18, WeatherCode: 0, Icon: "☀️"}
	svc.On("Render", mock.Anything, "3f1c", mock.Anything).Return(v, nil)

	w := serve(svc, "/profile/3f1c?lat=1&lon=2", "3f1c")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Hola, María Pérez")
	assert.Contains(t, body, "18°")
	assert.Contains(t, body, `src="https://cdn/a.jpg"`)
	assert.Contains(t, body, "Datos de facturación")
	assert.NotContains(t, body, profile.Unspecified)
	assert.Contains(t, body, "maria@example.com")
}

func TestPage_BillingPlaceholders(t *testing.T) {
	svc := new(MockService)
	v := profile.Build(&models.UserRecord{ID: "3f1c", Name: "Ana", LastName: "Ruiz", PhoneNumber: "+593991234567"})
	svc.On("Render", mock.Anything, "3f1c", (*models.Coordinates)(nil)).Return(v, nil)

	w := serve(svc, "/profile/3f1c", "3f1c")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), profile.Unspecified)
	assert.Contains(t, w.Body.String(), profile.NoFlag)
	assert.NotContains(t, w.Body.String(), "°")
}

func TestPage_Error(t *testing.T) {
	svc := new(MockService)
	svc.On("Render", mock.Anything, "missing", (*models.Coordinates)(nil)).
		Return(nil, fmt.Errorf("op: %w", models.ErrUserNotFound))

	w := serve(svc, "/profile/missing", "missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Error: Usuario no encontrado")
}
