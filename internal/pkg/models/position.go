package models

import "time"

// Position is a single positioned sample from the device geolocation source
type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy,omitempty"` // meters, when the source reports it
}

// PositionUpdate is the payload devices push over HTTP or NATS
type PositionUpdate struct {
	UserID   string   `json:"user_id"`
	Position Position `json:"position"`
}

// PositionError is reported by a device when its geolocation capability fails
type PositionError struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}
