package hazard

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/vigilante/services/hazard HazardGW

// HazardGW announces hazard changes on the event bus
type HazardGW interface {
	PublishAlertCreated(ctx context.Context, alert models.Hazard) error
	PublishAlertRemoved(ctx context.Context, id string) error
}
