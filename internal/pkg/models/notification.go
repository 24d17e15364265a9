package models

import "time"

// Notification decision reasons
const (
	ReasonAllowed          = "allowed"
	ReasonPremiumRequired  = "premium-required"
	ReasonAutoReadDisabled = "auto-read-disabled"
	ReasonCooldown         = "cooldown"
)

// NotificationDecision is recomputed on every evaluation tick
type NotificationDecision struct {
	Allow  bool   `json:"allow"`
	Reason string `json:"reason"`
}

// Notification is an outward warning sent to the driver's TTS/UI sink
type Notification struct {
	UserID    string           `json:"user_id"`
	Text      string           `json:"text"`
	Trigger   TriggerKind      `json:"trigger"`
	Fallback  bool             `json:"fallback"`
	Volume    float64          `json:"volume"`
	Language  string           `json:"language"`
	Events    []ProximityEvent `json:"events,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// MarkerUpdate carries the full set of live hazards after a tick
type MarkerUpdate struct {
	UserID    string         `json:"user_id"`
	Markers   []HazardMarker `json:"markers"`
	Stale     bool           `json:"stale"`
	CreatedAt time.Time      `json:"created_at"`
}
