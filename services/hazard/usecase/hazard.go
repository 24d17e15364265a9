package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
	"github.com/piresc/vigilante/services/hazard"
	"github.com/piresc/vigilante/services/hazard/index"
)

const (
	// DefaultAlertTTL is how long a driver report stays on the map
	DefaultAlertTTL = 2 * time.Hour

	maxDescriptionLength = 200
)

// HazardUC implements the hazard use case interface
type HazardUC struct {
	index     *index.Index
	alertRepo hazard.AlertRepo
	catalog   hazard.CatalogRepo
	hazardGW  hazard.HazardGW
	alertTTL  time.Duration
	clock     models.Clock
}

// NewHazardUC creates a new hazard use case
func NewHazardUC(
	idx *index.Index,
	alertRepo hazard.AlertRepo,
	catalog hazard.CatalogRepo,
	hazardGW hazard.HazardGW,
	cfg models.EngineConfig,
	clock models.Clock,
) *HazardUC {
	ttl := cfg.AlertTTL
	if ttl <= 0 {
		ttl = DefaultAlertTTL
	}
	return &HazardUC{
		index:     idx,
		alertRepo: alertRepo,
		catalog:   catalog,
		hazardGW:  hazardGW,
		alertTTL:  ttl,
		clock:     clock,
	}
}

// SubmitAlert validates a driver report and anchors it at the driver's
// current position. Persisting and publishing are best effort: the alert is
// already live in the local index when they run.
func (uc *HazardUC) SubmitAlert(ctx context.Context, userID string, submission models.AlertSubmission, position *models.Position) (models.Hazard, error) {
	category, description, err := validateSubmission(submission)
	if err != nil {
		return models.Hazard{}, err
	}
	if position == nil {
		return models.Hazard{}, apperrors.ErrSourceUnavailable
	}

	now := models.NowOr(uc.clock)
	alert := models.Hazard{
		ID:          uuid.New().String(),
		Kind:        models.HazardKindAlert,
		Latitude:    position.Latitude,
		Longitude:   position.Longitude,
		Category:    category,
		Description: description,
		CreatedAt:   now,
		ReporterID:  userID,
		ExpiresAt:   now.Add(uc.alertTTL),
	}

	if err := uc.index.Insert(alert); err != nil {
		return models.Hazard{}, fmt.Errorf("failed to index alert: %w", err)
	}
	metrics.AlertsSubmitted.WithLabelValues(category).Inc()

	if uc.alertRepo != nil {
		if err := uc.alertRepo.Save(ctx, alert); err != nil {
			logger.WarnCtx(ctx, "Failed to persist alert",
				logger.HazardID(alert.ID),
				logger.Err(err))
		}
	}
	if uc.hazardGW != nil {
		if err := uc.hazardGW.PublishAlertCreated(ctx, alert); err != nil {
			logger.WarnCtx(ctx, "Failed to publish alert",
				logger.HazardID(alert.ID),
				logger.Err(err))
		}
	}

	logger.InfoCtx(ctx, "Alert submitted",
		logger.HazardID(alert.ID),
		logger.UserID(userID),
		logger.String("category", category))

	return alert, nil
}

func validateSubmission(submission models.AlertSubmission) (string, string, error) {
	category := strings.ToLower(strings.TrimSpace(submission.Category))
	valid := false
	for _, c := range models.AlertCategories {
		if c == category {
			valid = true
			break
		}
	}
	if !valid {
		return "", "", apperrors.Validation("unknown category %q", submission.Category)
	}

	description := utils.SanitizeString(submission.Description)
	if description == "" {
		return "", "", apperrors.Validation("description is required")
	}
	return category, utils.Truncate(description, maxDescriptionLength), nil
}

// LoadCatalog indexes every radar and every persisted alert. A duplicate
// radar id aborts the load; alerts already indexed are skipped.
func (uc *HazardUC) LoadCatalog(ctx context.Context) (int, error) {
	loaded := 0

	if uc.catalog != nil {
		radars, err := uc.catalog.LoadRadars(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to load radar catalog: %w", err)
		}
		for _, radar := range radars {
			if err := uc.index.Insert(radar); err != nil {
				return loaded, fmt.Errorf("failed to index radar %s: %w", radar.ID, err)
			}
			loaded++
		}
	}

	if uc.alertRepo != nil {
		alerts, err := uc.alertRepo.ListActive(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to restore persisted alerts", logger.Err(err))
			return loaded, nil
		}
		for _, alert := range alerts {
			if err := uc.index.Insert(alert); err != nil {
				if !errors.Is(err, apperrors.ErrDuplicateHazard) {
					logger.WarnCtx(ctx, "Skipping persisted alert",
						logger.HazardID(alert.ID),
						logger.Err(err))
				}
				continue
			}
			loaded++
		}
	}

	logger.InfoCtx(ctx, "Hazard catalog loaded", logger.Int("hazards", loaded))
	return loaded, nil
}

// IngestAlert indexes an alert announced on the event bus. Alerts this
// instance created itself come back as duplicates and are ignored.
func (uc *HazardUC) IngestAlert(ctx context.Context, alert models.Hazard) error {
	if alert.Kind != models.HazardKindAlert {
		return apperrors.Validation("hazard %s is not an alert", alert.ID)
	}
	if alert.Expired(models.NowOr(uc.clock)) {
		return nil
	}
	if err := uc.index.Insert(alert); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateHazard) {
			return nil
		}
		return err
	}
	logger.Debug("Ingested remote alert", logger.HazardID(alert.ID))
	return nil
}

// Remove drops a hazard from the index and announces the removal to the
// other instances. Alerts are deleted from storage as well.
func (uc *HazardUC) Remove(ctx context.Context, id string) error {
	existing, ok := uc.index.Get(id)
	if err := uc.index.Remove(id); err != nil {
		return err
	}
	if !ok || !existing.IsRadar() {
		uc.deleteStored(ctx, id)
	}
	uc.publishRemoval(ctx, id)
	return nil
}

// RemoveBy removes a hazard on behalf of a user. Alerts may be removed by
// their reporter; radars and other drivers' alerts need the admin claim.
func (uc *HazardUC) RemoveBy(ctx context.Context, id, userID string, admin bool) error {
	existing, ok := uc.index.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrHazardNotFound, id)
	}
	if !admin {
		if existing.IsRadar() {
			return fmt.Errorf("%w: radar %s can only be removed by an administrator", apperrors.ErrEntitlementDenied, id)
		}
		if existing.ReporterID == "" || existing.ReporterID != userID {
			return fmt.Errorf("%w: alert %s was reported by another driver", apperrors.ErrEntitlementDenied, id)
		}
	}
	return uc.Remove(ctx, id)
}

// ForgetRemote drops a hazard another instance removed. A hazard this
// instance never indexed, or already removed, is not an error.
func (uc *HazardUC) ForgetRemote(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("hazard id is required")
	}
	if err := uc.index.Remove(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	logger.Debug("Forgot remotely removed hazard", logger.HazardID(id))
	return nil
}

func (uc *HazardUC) deleteStored(ctx context.Context, id string) {
	if uc.alertRepo == nil {
		return
	}
	if err := uc.alertRepo.Delete(ctx, id); err != nil {
		logger.WarnCtx(ctx, "Failed to delete persisted alert",
			logger.HazardID(id),
			logger.Err(err))
	}
}

func (uc *HazardUC) publishRemoval(ctx context.Context, id string) {
	if uc.hazardGW == nil {
		return
	}
	if err := uc.hazardGW.PublishAlertRemoved(ctx, id); err != nil {
		logger.WarnCtx(ctx, "Failed to publish hazard removal",
			logger.HazardID(id),
			logger.Err(err))
	}
}

// Nearby returns hazards within radiusMeters, nearest first
func (uc *HazardUC) Nearby(lat, lng, radiusMeters float64) []models.HazardDistance {
	return uc.index.Query(lat, lng, radiusMeters)
}

// PruneExpired drops alerts past their horizon. Redis expires their records
// on its own, so only the index is touched.
func (uc *HazardUC) PruneExpired(ctx context.Context) []string {
	removed := uc.index.PruneExpired(models.NowOr(uc.clock))
	if len(removed) > 0 {
		logger.InfoCtx(ctx, "Pruned expired alerts", logger.Strings("hazard_ids", removed))
	}
	return removed
}
