// Package profile собирает страницу профиля: сохранённая запись пользователя,
// секции личных и платёжных данных и, если известны координаты, текущая погода.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/trd-registration/internal/lib/phone"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/models"
)

const (
	// Unspecified подставляется в платёжные данные, когда они не совпадают с личными.
	Unspecified = "Sin especificar"
	// NoFlag заменяет флаг страны в незаполненной секции.
	NoFlag = "--"

	titlePersonal = "Información personal"
	titleBilling  = "Datos de facturación"
)

// Field — подпись и значение поля профиля.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section — группа полей профиля с флагом страны телефона.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	Flag   string  `json:"flag"`
}

// View — данные страницы профиля.
type View struct {
	ID       string                  `json:"id"`
	Greeting string                  `json:"greeting"`
	Photos   []string                `json:"photos"`
	Personal Section                 `json:"personal"`
	Billing  Section                 `json:"billing"`
	Weather  *models.WeatherSnapshot `json:"weather,omitempty"`
}

// UserFetcher получает запись по идентификатору.
type UserFetcher interface {
	FetchByID(ctx context.Context, id string) (*models.UserRecord, error)
}

// WeatherProvider возвращает текущую погоду по координатам.
type WeatherProvider interface {
	Current(ctx context.Context, coords models.Coordinates) (*models.WeatherSnapshot, error)
}

type Service struct {
	users       UserFetcher
	weather     WeatherProvider
	weatherWait time.Duration
	log         *slog.Logger
}

// NewService создаёт Service. weather может быть nil: блок погоды тогда не выводится.
// weatherWait ограничивает ожидание погоды после загрузки записи.
func NewService(users UserFetcher, weather WeatherProvider, weatherWait time.Duration, log *slog.Logger) *Service {
	return &Service{
		users:       users,
		weather:     weather,
		weatherWait: weatherWait,
		log:         log,
	}
}

// Render загружает запись ровно один раз и строит View.
// Погода запрашивается параллельно; ошибка или опоздание погоды только убирают её блок.
func (s *Service) Render(ctx context.Context, id string, coords *models.Coordinates) (*View, error) {
	const op = "services.profile.Render"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	weatherCh := s.lookupWeather(ctx, coords)

	user, err := s.users.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := Build(user)
	if weatherCh != nil {
		view.Weather = s.awaitWeather(ctx, weatherCh)
	}
	return view, nil
}

func (s *Service) lookupWeather(ctx context.Context, coords *models.Coordinates) <-chan *models.WeatherSnapshot {
	const op = "services.profile.lookupWeather"
	if s.weather == nil || coords == nil {
		return nil
	}

	ch := make(chan *models.WeatherSnapshot, 1)
	go func() {
		snapshot, err := s.weather.Current(ctx, *coords)
		if err != nil {
			s.log.Warn("failed to get weather", slog.String("op", op), sl.Err(err))
			snapshot = nil
		}
		ch <- snapshot
	}()
	return ch
}

func (s *Service) awaitWeather(ctx context.Context, ch <-chan *models.WeatherSnapshot) *models.WeatherSnapshot {
	timer := time.NewTimer(s.weatherWait)
	defer timer.Stop()

	select {
	case snapshot := <-ch:
		return snapshot
	case <-timer.C:
		s.log.Warn("weather is late, rendering without it", slog.Duration("wait", s.weatherWait))
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Build строит View из записи пользователя.
func Build(user *models.UserRecord) *View {
	photos := user.Photos
	if photos == nil {
		photos = []string{}
	}

	personal := Section{
		Title:  titlePersonal,
		Fields: fields(user.Name, user.LastName, user.DocumentType, user.DocNumber, user.Email, user.PhoneNumber),
		Flag:   phone.CountryFlag(user.PhoneNumber),
	}

	billing := Section{
		Title:  titleBilling,
		Fields: fields(Unspecified, Unspecified, Unspecified, Unspecified, Unspecified, Unspecified),
		Flag:   NoFlag,
	}
	if user.UseSameBillingData {
		billing.Fields = append([]Field(nil), personal.Fields...)
		billing.Flag = personal.Flag
	}

	return &View{
		ID:       user.ID,
		Greeting: fmt.Sprintf("Hola, %s %s", user.Name, user.LastName),
		Photos:   photos,
		Personal: personal,
		Billing:  billing,
	}
}

func fields(name, lastName, docType, docNumber, email, phoneNumber string) []Field {
	return []Field{
		{Label: "Nombre", Value: name},
		{Label: "Apellido", Value: lastName},
		{Label: "Tipo de Documento", Value: docType},
		{Label: "Número de Documento", Value: docNumber},
		{Label: "Correo electrónico", Value: email},
		{Label: "Teléfono", Value: phoneNumber},
	}
}

// ParseCoordinates разбирает широту и долготу из строк запроса.
// Возвращает nil, если хотя бы одно значение отсутствует или некорректно.
func ParseCoordinates(lat, lon string) *models.Coordinates {
	if lat == "" || lon == "" {
		return nil
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || la < -90 || la > 90 {
		return nil
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil || lo < -180 || lo > 180 {
		return nil
	}
	return &models.Coordinates{Latitude: la, Longitude: lo}
}

// ErrorMessage возвращает текст ошибки загрузки профиля для показа пользователю.
func ErrorMessage(err error) string {
	var storeErr *models.StoreError
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return "Usuario no encontrado"
	case errors.As(err, &storeErr):
		return storeErr.Message
	default:
		return "Error al obtener el usuario"
	}
}
