package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/services/hazard"
)

type radarRow struct {
	ID          string    `db:"id"`
	Latitude    float64   `db:"latitude"`
	Longitude   float64   `db:"longitude"`
	SpeedLimit  int       `db:"speed_limit"`
	RadarType   string    `db:"radar_type"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type postgresCatalog struct {
	db *database.PostgresClient
}

// NewPostgresCatalog reads radars from the radars table
func NewPostgresCatalog(db *database.PostgresClient) hazard.CatalogRepo {
	return &postgresCatalog{db: db}
}

// LoadRadars returns every radar in the catalog
func (r *postgresCatalog) LoadRadars(ctx context.Context) ([]models.Hazard, error) {
	query := `
		SELECT id, latitude, longitude, speed_limit, radar_type, description, created_at
		FROM radars
		ORDER BY id
	`

	var rows []radarRow
	if err := r.db.GetDB().SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load radars: %w", err)
	}

	radars := make([]models.Hazard, 0, len(rows))
	for _, row := range rows {
		radars = append(radars, models.Hazard{
			ID:          row.ID,
			Kind:        models.HazardKindRadar,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			Category:    string(models.HazardKindRadar),
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
			SpeedLimit:  row.SpeedLimit,
			RadarType:   row.RadarType,
		})
	}
	return radars, nil
}
