package models

// WeatherSnapshot — текущая погода для страницы профиля. Не сохраняется.
type WeatherSnapshot struct {
	Temperature int    `json:"temperature"`
	WeatherCode int    `json:"weathercode"`
	Icon        string `json:"icon"`
}

// Coordinates — координаты, полученные браузером через geolocation API.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
