package engine

import (
	"context"

	"github.com/piresc/vigilante/internal/pkg/constants"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
)

// Sink receives everything a session emits for the driver UI
type Sink interface {
	PublishMarkers(ctx context.Context, update models.MarkerUpdate)
	PublishNotification(ctx context.Context, n models.Notification)
	PublishError(ctx context.Context, userID, code, message string)
}

// ClientNotifier pushes events to a connected driver UI
type ClientNotifier interface {
	NotifyClient(userID string, event string, data interface{}) bool
}

// Publisher is satisfied by both the NATS and the NSQ producers
type Publisher interface {
	Publish(subject string, message interface{}) error
}

type uiSink struct {
	clients ClientNotifier
	bus     Publisher
}

// NewSink delivers markers to the websocket client and notifications to the
// websocket client and the event bus. bus may be nil.
func NewSink(clients ClientNotifier, bus Publisher) Sink {
	return &uiSink{clients: clients, bus: bus}
}

func (s *uiSink) PublishMarkers(_ context.Context, update models.MarkerUpdate) {
	s.clients.NotifyClient(update.UserID, models.EventMarkers, update)
}

func (s *uiSink) PublishNotification(ctx context.Context, n models.Notification) {
	if !s.clients.NotifyClient(n.UserID, models.EventNotification, n) {
		logger.Debug("Driver UI not connected, notification not delivered", logger.UserID(n.UserID))
	}
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(constants.SubjectNotification, n); err != nil {
		logger.WarnCtx(ctx, "Failed to publish notification",
			logger.UserID(n.UserID),
			logger.Err(err))
	}
}

func (s *uiSink) PublishError(_ context.Context, userID, code, message string) {
	s.clients.NotifyClient(userID, models.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}
