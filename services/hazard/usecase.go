package hazard

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/models"
)

// HazardUC defines the hazard business logic
type HazardUC interface {
	// SubmitAlert anchors a driver report at the driver's current position
	SubmitAlert(ctx context.Context, userID string, submission models.AlertSubmission, position *models.Position) (models.Hazard, error)
	// LoadCatalog indexes the radar catalog and the persisted alerts
	LoadCatalog(ctx context.Context) (int, error)
	// IngestAlert indexes an alert created by another engine instance
	IngestAlert(ctx context.Context, alert models.Hazard) error
	Remove(ctx context.Context, id string) error
	// RemoveBy removes a hazard after checking the caller may do so
	RemoveBy(ctx context.Context, id, userID string, admin bool) error
	// ForgetRemote drops a hazard removed by another engine instance
	ForgetRemote(ctx context.Context, id string) error
	Nearby(lat, lng, radiusMeters float64) []models.HazardDistance
	PruneExpired(ctx context.Context) []string
}
