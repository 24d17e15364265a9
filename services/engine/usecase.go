package engine

import (
	"context"
	"math"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/vigilante/services/engine EngineUC

// EngineUC is what the driver-facing surfaces need from the engine
type EngineUC interface {
	PushPosition(userID string, pos models.Position) bool
	ReportPositionError(userID, message string)
	SetEntitlement(userID string, premium bool)
	CurrentPosition(userID string) (*models.Position, bool)
	Proximity(userID string) []models.ProximityEvent
	Dismiss(userID, hazardID string) bool
	SubmitAlert(ctx context.Context, userID string, submission models.AlertSubmission) (models.Hazard, error)
	Manual(ctx context.Context, userID, utterance string) models.CopilotReply
	Advice(ctx context.Context, userID, query string) (string, error)
	Logout(userID string) bool
}

var _ EngineUC = (*Engine)(nil)

// ValidatePosition rejects malformed samples at the edge
func ValidatePosition(pos models.Position) error {
	switch {
	case math.IsNaN(pos.Latitude) || pos.Latitude < -90 || pos.Latitude > 90:
		return apperrors.Validation("latitude %v out of range", pos.Latitude)
	case math.IsNaN(pos.Longitude) || pos.Longitude < -180 || pos.Longitude > 180:
		return apperrors.Validation("longitude %v out of range", pos.Longitude)
	case pos.Accuracy != nil && *pos.Accuracy < 0:
		return apperrors.Validation("accuracy must not be negative")
	}
	return nil
}
