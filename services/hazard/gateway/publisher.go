package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/vigilante/internal/pkg/constants"
	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/services/hazard"
)

// Publisher is satisfied by both the NATS and the NSQ producers
type Publisher interface {
	Publish(subject string, message interface{}) error
}

type hazardGW struct {
	publisher Publisher
}

// NewHazardGW creates a hazard gateway on top of the configured event bus
func NewHazardGW(publisher Publisher) hazard.HazardGW {
	return &hazardGW{publisher: publisher}
}

// PublishAlertCreated announces an accepted alert
func (g *hazardGW) PublishAlertCreated(_ context.Context, alert models.Hazard) error {
	event := models.AlertCreated{
		Hazard:    alert,
		CreatedAt: alert.CreatedAt,
	}
	if err := g.publisher.Publish(constants.SubjectAlertCreated, event); err != nil {
		return fmt.Errorf("failed to publish alert created: %w", err)
	}
	return nil
}

// PublishAlertRemoved announces that a hazard left the index
func (g *hazardGW) PublishAlertRemoved(_ context.Context, id string) error {
	if err := g.publisher.Publish(constants.SubjectAlertRemoved, models.HazardRemoved{ID: id}); err != nil {
		return fmt.Errorf("failed to publish alert removed: %w", err)
	}
	return nil
}
