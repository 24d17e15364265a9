package preferences

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/vigilante/services/preferences PreferencesRepo

// PreferencesRepo stores the settings a driver picks in the app
type PreferencesRepo interface {
	// Get returns the stored preferences, or the defaults for a new user
	Get(ctx context.Context, userID string) (models.UserPreferences, error)
	Save(ctx context.Context, userID string, prefs models.UserPreferences) error
}

// Validate checks preferences written by the settings surface
func Validate(prefs models.UserPreferences) error {
	switch {
	case prefs.SpeedThreshold < 0:
		return apperrors.Validation("speed_threshold must not be negative")
	case prefs.AlertDistanceMeters <= 0:
		return apperrors.Validation("alert_distance_meters must be positive")
	case prefs.VoiceVolume < 0 || prefs.VoiceVolume > 1:
		return apperrors.Validation("voice_volume must be between 0 and 1")
	}
	if prefs.Units != models.UnitsKmh && prefs.Units != models.UnitsMph {
		return apperrors.Validation("unknown units %q", prefs.Units)
	}
	switch prefs.Language {
	case models.LanguagePT, models.LanguageEN, models.LanguageES:
		return nil
	}
	return apperrors.Validation("unsupported language %q", prefs.Language)
}
