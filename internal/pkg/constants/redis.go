package constants

// Redis key formats
const (
	KeyAlert      = "hazard:alert:%s"     // Format: hazard:alert:{hazard_id}
	KeyAlertIndex = "hazard:alerts:ids"   // Set of persisted alert ids
	KeyUserPrefs  = "user:preferences:%s" // Format: user:preferences:{user_id}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{user_or_ip}
)

// Redis hash fields for user preferences
const (
	FieldSpeedThreshold = "speed_threshold"
	FieldAlertDistance  = "alert_distance_meters"
	FieldUnits          = "units"
	FieldVoiceVolume    = "voice_volume"
	FieldAutoRead       = "auto_read_alerts"
	FieldPremium        = "is_premium_entitled"
	FieldLanguage       = "language"
)
