package models

// WeatherSnapshot is the current weather at a coordinate. Known is false
// when the provider failed or answered with an unexpected shape.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	IsRaining   bool    `json:"is_raining"`
	Known       bool    `json:"known"`
}

// UnknownWeather is substituted whenever the weather provider is unavailable
func UnknownWeather() WeatherSnapshot {
	return WeatherSnapshot{Condition: "unknown"}
}

// Route is a driving route between two points. Found is false for "no route".
type Route struct {
	Found           bool         `json:"found"`
	Geometry        [][2]float64 `json:"geometry,omitempty"` // [lat, lng] pairs
	DistanceMeters  float64      `json:"distance_meters,omitempty"`
	DurationSeconds float64      `json:"duration_seconds,omitempty"`
}

// NoRoute is the definite "no route" result
func NoRoute() Route {
	return Route{}
}
