package models

import "encoding/json"

// WebSocket event names pushed to the driver UI
const (
	EventMarkers      = "markers"
	EventNotification = "notification"
	EventError        = "error"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
