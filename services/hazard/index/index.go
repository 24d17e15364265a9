// Package index is an in-memory spatial index over radars and alerts
// bucketed by geohash cell.
package index

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
)

const (
	// CellPrecision is the geohash length used for buckets (~1.2 km x 0.6 km)
	CellPrecision uint = 6

	// maxQueryCells bounds covering-cell enumeration before falling back to a scan
	maxQueryCells = 400
)

// Index holds hazards keyed by id and by geohash cell
type Index struct {
	mu      sync.RWMutex
	hazards map[string]models.Hazard
	cells   map[string]map[string]struct{}
	clock   models.Clock
}

// New creates an empty index. A nil clock uses the wall clock.
func New(clock models.Clock) *Index {
	return &Index{
		hazards: make(map[string]models.Hazard),
		cells:   make(map[string]map[string]struct{}),
		clock:   clock,
	}
}

func cellOf(h models.Hazard) string {
	return utils.EncodeLocation(utils.GeoPoint{Latitude: h.Latitude, Longitude: h.Longitude}, CellPrecision)
}

// Insert adds a hazard. The hazard is visible to queries only once fully inserted.
func (idx *Index) Insert(h models.Hazard) error {
	if h.ID == "" {
		return apperrors.Validation("hazard id is required")
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.hazards[h.ID]; exists {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateHazard, h.ID)
	}

	cell := cellOf(h)
	bucket, ok := idx.cells[cell]
	if !ok {
		bucket = make(map[string]struct{})
		idx.cells[cell] = bucket
	}
	bucket[h.ID] = struct{}{}
	idx.hazards[h.ID] = h

	metrics.HazardsIndexed.Set(float64(len(idx.hazards)))
	return nil
}

// Remove deletes a hazard by id
func (idx *Index) Remove(id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.removeLocked(id) {
		return fmt.Errorf("%w: %s", apperrors.ErrHazardNotFound, id)
	}
	metrics.HazardsIndexed.Set(float64(len(idx.hazards)))
	return nil
}

func (idx *Index) removeLocked(id string) bool {
	h, exists := idx.hazards[id]
	if !exists {
		return false
	}
	delete(idx.hazards, id)

	cell := cellOf(h)
	if bucket, ok := idx.cells[cell]; ok {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(idx.cells, cell)
		}
	}
	return true
}

// Get returns a hazard by id
func (idx *Index) Get(id string) (models.Hazard, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	h, ok := idx.hazards[id]
	return h, ok
}

// Len returns the number of indexed hazards, expired alerts included
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.hazards)
}

// All returns every hazard that has not expired, ordered by id
func (idx *Index) All() []models.Hazard {
	now := models.NowOr(idx.clock)

	idx.mu.RLock()
	result := make([]models.Hazard, 0, len(idx.hazards))
	for _, h := range idx.hazards {
		if !h.Expired(now) {
			result = append(result, h)
		}
	}
	idx.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Query returns the hazards within radiusMeters of the center, nearest
// first with ties broken by id. Expired alerts are never returned.
func (idx *Index) Query(lat, lng, radiusMeters float64) []models.HazardDistance {
	if radiusMeters <= 0 {
		return []models.HazardDistance{}
	}

	center := utils.GeoPoint{Latitude: lat, Longitude: lng}
	now := models.NowOr(idx.clock)

	idx.mu.RLock()
	var result []models.HazardDistance
	collect := func(h models.Hazard) {
		if h.Expired(now) {
			return
		}
		d := utils.HaversineMeters(center, utils.GeoPoint{Latitude: h.Latitude, Longitude: h.Longitude})
		if d <= radiusMeters {
			result = append(result, models.HazardDistance{Hazard: h, DistanceMeters: d})
		}
	}

	if cells, ok := utils.CoveringCells(center, radiusMeters, CellPrecision, maxQueryCells); ok {
		for _, cell := range cells {
			for id := range idx.cells[cell] {
				collect(idx.hazards[id])
			}
		}
	} else {
		for _, h := range idx.hazards {
			collect(h)
		}
	}
	idx.mu.RUnlock()

	if result == nil {
		return []models.HazardDistance{}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DistanceMeters != result[j].DistanceMeters {
			return result[i].DistanceMeters < result[j].DistanceMeters
		}
		return result[i].Hazard.ID < result[j].Hazard.ID
	})
	return result
}

// PruneExpired removes expired alerts and returns their ids
func (idx *Index) PruneExpired(now time.Time) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var removed []string
	for id, h := range idx.hazards {
		if h.Expired(now) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		idx.removeLocked(id)
	}
	sort.Strings(removed)

	if len(removed) > 0 {
		metrics.HazardsIndexed.Set(float64(len(idx.hazards)))
		metrics.AlertsExpired.Add(float64(len(removed)))
	}
	return removed
}
