package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/piresc/vigilante/internal/pkg/constants"
	"github.com/piresc/vigilante/internal/pkg/database"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/services/preferences"
)

type preferencesRepo struct {
	redisClient *database.RedisClient
}

// NewPreferencesRepository creates a repository keeping one Redis hash per user
func NewPreferencesRepository(redisClient *database.RedisClient) preferences.PreferencesRepo {
	return &preferencesRepo{redisClient: redisClient}
}

// Get reads the user's hash. Missing or unparsable fields keep their default.
func (r *preferencesRepo) Get(ctx context.Context, userID string) (models.UserPreferences, error) {
	prefs := models.DefaultPreferences()

	fields, err := r.redisClient.HGetAll(ctx, fmt.Sprintf(constants.KeyUserPrefs, userID))
	if err != nil {
		return prefs, fmt.Errorf("failed to get preferences: %w", err)
	}

	if v, err := strconv.Atoi(fields[constants.FieldSpeedThreshold]); err == nil {
		prefs.SpeedThreshold = v
	}
	if v, err := strconv.ParseFloat(fields[constants.FieldAlertDistance], 64); err == nil {
		prefs.AlertDistanceMeters = v
	}
	if v := fields[constants.FieldUnits]; v != "" {
		prefs.Units = v
	}
	if v, err := strconv.ParseFloat(fields[constants.FieldVoiceVolume], 64); err == nil {
		prefs.VoiceVolume = v
	}
	if v, err := strconv.ParseBool(fields[constants.FieldAutoRead]); err == nil {
		prefs.AutoReadAlerts = v
	}
	if v, err := strconv.ParseBool(fields[constants.FieldPremium]); err == nil {
		prefs.IsPremiumEntitled = v
	}
	if v := fields[constants.FieldLanguage]; v != "" {
		prefs.Language = v
	}

	return prefs, nil
}

// Save overwrites every preference field
func (r *preferencesRepo) Save(ctx context.Context, userID string, prefs models.UserPreferences) error {
	values := map[string]interface{}{
		constants.FieldSpeedThreshold: strconv.Itoa(prefs.SpeedThreshold),
		constants.FieldAlertDistance:  strconv.FormatFloat(prefs.AlertDistanceMeters, 'f', -1, 64),
		constants.FieldUnits:          prefs.Units,
		constants.FieldVoiceVolume:    strconv.FormatFloat(prefs.VoiceVolume, 'f', -1, 64),
		constants.FieldAutoRead:       strconv.FormatBool(prefs.AutoReadAlerts),
		constants.FieldPremium:        strconv.FormatBool(prefs.IsPremiumEntitled),
		constants.FieldLanguage:       prefs.Language,
	}
	if err := r.redisClient.HSet(ctx, fmt.Sprintf(constants.KeyUserPrefs, userID), values); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
