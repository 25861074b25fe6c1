// Package weather получает текущую погоду по координатам из Open-Meteo.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/trd-registration/internal/models"
)

type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент Open-Meteo с базовым адресом baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Current возвращает текущую температуру и код погоды для координат.
func (c *Client) Current(ctx context.Context, coords models.Coordinates) (*models.WeatherSnapshot, error) {
	const op = "weather.Current"

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m,weathercode")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.WeatherSnapshot{
		Temperature: roundHalfUp(forecast.Current.Temperature),
		WeatherCode: forecast.Current.WeatherCode,
		Icon:        Icon(forecast.Current.WeatherCode),
	}, nil
}

// roundHalfUp округляет половины вверх: 20.5 → 21, -0.5 → 0.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
