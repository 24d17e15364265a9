package hazard

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/vigilante/services/hazard AlertRepo,CatalogRepo

// AlertRepo persists user-submitted alerts so they survive restarts
type AlertRepo interface {
	Save(ctx context.Context, alert models.Hazard) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]models.Hazard, error)
}

// CatalogRepo reads the static radar catalog
type CatalogRepo interface {
	LoadRadars(ctx context.Context) ([]models.Hazard, error)
}
