package models

// WeatherReading holds the current conditions at a coordinate.
type WeatherReading struct {
	TemperatureC float64 // Temperature in degrees Celsius.
	WindSpeedKmh float64 // Wind speed in kilometres per hour.
}
