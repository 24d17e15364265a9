package models

import "time"

// ProximityEvent is a hazard currently inside the driver's alert radius
type ProximityEvent struct {
	Hazard         Hazard    `json:"hazard"`
	DistanceMeters float64   `json:"distance_meters"`
	FirstSeenAt    time.Time `json:"first_seen_at"`
	IsNew          bool      `json:"is_new"` // entered the radius on this evaluation
}

// HazardMarker is the visual representation pushed to the map for a live event
type HazardMarker struct {
	Event     ProximityEvent `json:"event"`
	Overspeed bool           `json:"overspeed"`
}
