package models

import "time"

// HazardKind distinguishes static radars from user-submitted alerts
type HazardKind string

const (
	HazardKindRadar HazardKind = "radar"
	HazardKindAlert HazardKind = "alert"
)

// Alert categories accepted from user submissions
const (
	CategoryAccident = "accident"
	CategoryPolice   = "police"
	CategoryHazard   = "hazard"
	CategoryTraffic  = "traffic"
)

// Radar types as published by the static catalog
const (
	RadarTypeFixed   = "fixed"
	RadarTypeMobile  = "mobile"
	RadarTypeAverage = "average"
)

// AlertCategories lists every category a driver may report
var AlertCategories = []string{CategoryAccident, CategoryPolice, CategoryHazard, CategoryTraffic}

// Hazard is a point-located road condition. Radars carry SpeedLimit and
// RadarType; alerts carry ReporterID and ExpiresAt.
type Hazard struct {
	ID          string     `json:"id" db:"id"`
	Kind        HazardKind `json:"kind" db:"kind"`
	Latitude    float64    `json:"latitude" db:"latitude"`
	Longitude   float64    `json:"longitude" db:"longitude"`
	Category    string     `json:"category" db:"category"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	SpeedLimit int    `json:"speed_limit,omitempty" db:"speed_limit"`
	RadarType  string `json:"radar_type,omitempty" db:"radar_type"`

	ReporterID string    `json:"reporter_id,omitempty" db:"-"`
	ExpiresAt  time.Time `json:"expires_at,omitempty" db:"-"`
}

// IsRadar reports whether the hazard is a static speed camera
func (h Hazard) IsRadar() bool {
	return h.Kind == HazardKindRadar
}

// Expired reports whether an alert is past its expiry horizon. Radars never expire.
func (h Hazard) Expired(now time.Time) bool {
	if h.Kind != HazardKindAlert || h.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(h.ExpiresAt)
}

// HazardDistance pairs a hazard with its great-circle distance to a query point
type HazardDistance struct {
	Hazard         Hazard  `json:"hazard"`
	DistanceMeters float64 `json:"distance_meters"`
}

// AlertSubmission is what a driver sends when reporting a hazard
type AlertSubmission struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// AlertCreated is published on the event bus once an alert is accepted
type AlertCreated struct {
	Hazard    Hazard    `json:"hazard"`
	CreatedAt time.Time `json:"created_at"`
}

// HazardRemoved is published when a hazard leaves the index of one instance
type HazardRemoved struct {
	ID string `json:"id"`
}
