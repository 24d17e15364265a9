package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/vigilante/internal/pkg/constants"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/services/hazard"
)

type alertRepo struct {
	redisClient *database.RedisClient
	clock       models.Clock
}

// NewAlertRepository creates a Redis-backed alert repository. Each alert is
// stored as JSON under its own key expiring with the alert, plus an id set.
func NewAlertRepository(redisClient *database.RedisClient, clock models.Clock) hazard.AlertRepo {
	return &alertRepo{
		redisClient: redisClient,
		clock:       clock,
	}
}

// Save stores an alert until it expires
func (r *alertRepo) Save(ctx context.Context, alert models.Hazard) error {
	ttl := alert.ExpiresAt.Sub(models.NowOr(r.clock))
	if alert.ExpiresAt.IsZero() || ttl <= 0 {
		return fmt.Errorf("alert %s has no remaining lifetime", alert.ID)
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	if err := r.redisClient.Set(ctx, fmt.Sprintf(constants.KeyAlert, alert.ID), data, ttl); err != nil {
		return fmt.Errorf("failed to store alert: %w", err)
	}
	if err := r.redisClient.SAdd(ctx, constants.KeyAlertIndex, alert.ID); err != nil {
		return fmt.Errorf("failed to index alert: %w", err)
	}
	return nil
}

// Delete removes an alert
func (r *alertRepo) Delete(ctx context.Context, id string) error {
	if err := r.redisClient.Delete(ctx, fmt.Sprintf(constants.KeyAlert, id)); err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	if err := r.redisClient.SRem(ctx, constants.KeyAlertIndex, id); err != nil {
		return fmt.Errorf("failed to unindex alert: %w", err)
	}
	return nil
}

// ListActive returns every stored alert that has not expired. Ids whose key
// already expired are dropped from the index.
func (r *alertRepo) ListActive(ctx context.Context) ([]models.Hazard, error) {
	ids, err := r.redisClient.SMembers(ctx, constants.KeyAlertIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert ids: %w", err)
	}

	now := models.NowOr(r.clock)
	alerts := make([]models.Hazard, 0, len(ids))
	var stale []interface{}

	for _, id := range ids {
		raw, err := r.redisClient.Get(ctx, fmt.Sprintf(constants.KeyAlert, id))
		if errors.Is(err, redis.Nil) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get alert %s: %w", id, err)
		}

		var alert models.Hazard
		if err := json.Unmarshal([]byte(raw), &alert); err != nil {
			logger.Warn("Skipping corrupt alert record",
				logger.HazardID(id),
				logger.Err(err))
			stale = append(stale, id)
			continue
		}
		if alert.Expired(now) {
			continue
		}
		alerts = append(alerts, alert)
	}

	if len(stale) > 0 {
		if err := r.redisClient.SRem(ctx, constants.KeyAlertIndex, stale...); err != nil {
			logger.Warn("Failed to drop expired alert ids", logger.Err(err))
		}
	}

	return alerts, nil
}
