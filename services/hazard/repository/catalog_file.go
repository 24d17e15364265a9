package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/services/hazard"
)

type radarFile struct {
	Radars []radarEntry `yaml:"radars"`
}

type radarEntry struct {
	ID          string  `yaml:"id"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	SpeedLimit  int     `yaml:"speed_limit"`
	Type        string  `yaml:"type"`
	Description string  `yaml:"description"`
}

type fileCatalog struct {
	path  string
	clock models.Clock
}

// NewFileCatalog reads radars from a YAML file
func NewFileCatalog(path string, clock models.Clock) hazard.CatalogRepo {
	return &fileCatalog{path: path, clock: clock}
}

// LoadRadars parses and validates the catalog file
func (r *fileCatalog) LoadRadars(_ context.Context) ([]models.Hazard, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read radar catalog: %w", err)
	}
	return ParseRadarCatalog(data, models.NowOr(r.clock))
}

// ParseRadarCatalog decodes a YAML radar catalog
func ParseRadarCatalog(data []byte, loadedAt time.Time) ([]models.Hazard, error) {
	var file radarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse radar catalog: %w", err)
	}

	radars := make([]models.Hazard, 0, len(file.Radars))
	for i, entry := range file.Radars {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("radar #%d: %w", i+1, err)
		}

		radarType := entry.Type
		if radarType == "" {
			radarType = models.RadarTypeFixed
		}
		radars = append(radars, models.Hazard{
			ID:          entry.ID,
			Kind:        models.HazardKindRadar,
			Latitude:    entry.Latitude,
			Longitude:   entry.Longitude,
			Category:    string(models.HazardKindRadar),
			Description: entry.Description,
			CreatedAt:   loadedAt,
			SpeedLimit:  entry.SpeedLimit,
			RadarType:   radarType,
		})
	}
	return radars, nil
}

func (e radarEntry) validate() error {
	switch {
	case e.ID == "":
		return apperrors.Validation("id is required")
	case e.Latitude < -90 || e.Latitude > 90:
		return apperrors.Validation("latitude %v out of range", e.Latitude)
	case e.Longitude < -180 || e.Longitude > 180:
		return apperrors.Validation("longitude %v out of range", e.Longitude)
	case e.SpeedLimit <= 0:
		return apperrors.Validation("speed_limit must be positive")
	}
	switch e.Type {
	case "", models.RadarTypeFixed, models.RadarTypeMobile, models.RadarTypeAverage:
		return nil
	}
	return apperrors.Validation("unknown radar type %q", e.Type)
}
