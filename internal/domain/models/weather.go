// internal/domain/models/weather.go
package models

// WeatherData is the current-conditions snapshot shown on the dashboard.
// IsFrostWarning is set when the temperature is below 2°C so tender plants
// can be covered in time.
type WeatherData struct {
	Temp           float64 `json:"temp"` // °C
	Condition      string  `json:"condition"`
	Icon           string  `json:"icon"`
	IsFrostWarning bool    `json:"isFrostWarning"`
}
