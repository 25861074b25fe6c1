package weather

// forecastResponse — часть ответа /v1/forecast, которую использует сервис.
type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current"`
}

// Icon возвращает значок для кода погоды WMO.
func Icon(code int) string {
	switch {
	case code == 0:
		return "☀️"
	case code <= 3:
		return "🌤️"
	case code <= 48:
		return "🌫️"
	case code <= 55:
		return "🌧️"
	case code <= 65:
		return "🌧️"
	case code <= 75:
		return "🌨️"
	case code == 95:
		return "⛈️"
	default:
		return "🌥️"
	}
}
