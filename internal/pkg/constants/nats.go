package constants

// Event bus subjects, used verbatim as NSQ topics
const (
	// Device gateway
	SubjectPositionUpdate = "position.update"
	SubjectPositionError  = "position.error"

	// Hazards
	SubjectAlertCreated = "hazard.alert.created"
	SubjectAlertRemoved = "hazard.alert.removed"

	// Driver notifications fanned out to other consumers
	SubjectNotification = "driver.notification"
)
