package models

// Speed units
const (
	UnitsKmh = "kmh"
	UnitsMph = "mph"
)

// Supported languages
const (
	LanguagePT = "pt"
	LanguageEN = "en"
	LanguageES = "es"
)

// UserPreferences are owned by the settings surface; the engine only reads them
type UserPreferences struct {
	SpeedThreshold      int     `json:"speed_threshold"`
	AlertDistanceMeters float64 `json:"alert_distance_meters"`
	Units               string  `json:"units"`
	VoiceVolume         float64 `json:"voice_volume"`
	AutoReadAlerts      bool    `json:"auto_read_alerts"`
	IsPremiumEntitled   bool    `json:"is_premium_entitled"`
	Language            string  `json:"language"`
}

// DefaultPreferences mirrors the app's first-run settings
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		SpeedThreshold:      5,
		AlertDistanceMeters: 1000,
		Units:               UnitsKmh,
		VoiceVolume:         0.8,
		AutoReadAlerts:      true,
		IsPremiumEntitled:   false,
		Language:            LanguagePT,
	}
}
