package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/vigilante/internal/pkg/apperrors"
	"github.com/piresc/vigilante/internal/pkg/constants"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/models"
	natspkg "github.com/piresc/vigilante/internal/pkg/nats"
	nsqpkg "github.com/piresc/vigilante/internal/pkg/nsq"
	"github.com/piresc/vigilante/services/engine"
	"github.com/piresc/vigilante/services/hazard"
)

// Subscription binds a subject to its handler. Broadcast subscriptions are
// delivered to every engine instance instead of one per group.
type Subscription struct {
	Subject   string
	Broadcast bool
	Handle    func(message []byte) error
}

// Handler consumes device and hazard events from the event bus
type Handler struct {
	engineUC engine.EngineUC
	hazardUC hazard.HazardUC
}

// NewHandler creates the event bus handler
func NewHandler(engineUC engine.EngineUC, hazardUC hazard.HazardUC) *Handler {
	return &Handler{
		engineUC: engineUC,
		hazardUC: hazardUC,
	}
}

// Subscriptions lists every subject the engine consumes
func (h *Handler) Subscriptions() []Subscription {
	return []Subscription{
		{Subject: constants.SubjectPositionUpdate, Handle: h.HandlePositionUpdate},
		{Subject: constants.SubjectPositionError, Handle: h.HandlePositionError},
		{Subject: constants.SubjectAlertCreated, Broadcast: true, Handle: h.HandleAlertCreated},
		{Subject: constants.SubjectAlertRemoved, Broadcast: true, Handle: h.HandleHazardRemoved},
	}
}

// HandlePositionUpdate feeds a device sample into the driver's stream
func (h *Handler) HandlePositionUpdate(message []byte) error {
	var update models.PositionUpdate
	if err := json.Unmarshal(message, &update); err != nil {
		return fmt.Errorf("failed to unmarshal position update: %w", err)
	}
	if update.UserID == "" {
		return apperrors.Validation("user_id is required")
	}
	if err := engine.ValidatePosition(update.Position); err != nil {
		return err
	}
	if update.Position.Timestamp.IsZero() {
		update.Position.Timestamp = models.Now()
	}

	if !h.engineUC.PushPosition(update.UserID, update.Position) {
		logger.Debug("Out-of-order position dropped", logger.UserID(update.UserID))
	}
	return nil
}

// HandlePositionError records a device geolocation failure
func (h *Handler) HandlePositionError(message []byte) error {
	var report models.PositionError
	if err := json.Unmarshal(message, &report); err != nil {
		return fmt.Errorf("failed to unmarshal position error: %w", err)
	}
	if report.UserID == "" {
		return apperrors.Validation("user_id is required")
	}

	h.engineUC.ReportPositionError(report.UserID, report.Message)
	return nil
}

// HandleAlertCreated indexes alerts submitted through other instances
func (h *Handler) HandleAlertCreated(message []byte) error {
	var event models.AlertCreated
	if err := json.Unmarshal(message, &event); err != nil {
		return fmt.Errorf("failed to unmarshal alert created: %w", err)
	}
	return h.hazardUC.IngestAlert(context.Background(), event.Hazard)
}

// HandleHazardRemoved drops hazards removed through other instances
func (h *Handler) HandleHazardRemoved(message []byte) error {
	var event models.HazardRemoved
	if err := json.Unmarshal(message, &event); err != nil {
		return fmt.Errorf("failed to unmarshal hazard removed: %w", err)
	}
	return h.hazardUC.ForgetRemote(context.Background(), event.ID)
}

// StartNATS subscribes every handler on the shared NATS connection
func (h *Handler) StartNATS(client *natspkg.Client, queueGroup, instanceID string) ([]*natspkg.Consumer, error) {
	consumers := make([]*natspkg.Consumer, 0, len(h.Subscriptions()))
	for _, sub := range h.Subscriptions() {
		group := queueGroup
		if sub.Broadcast {
			group = queueGroup + "." + instanceID
		}
		consumer, err := natspkg.NewConsumer(client, sub.Subject, group, sub.Handle)
		if err != nil {
			for _, c := range consumers {
				_ = c.Stop()
			}
			return nil, fmt.Errorf("failed to subscribe %s: %w", sub.Subject, err)
		}
		consumers = append(consumers, consumer)
		logger.Info("Subscribed to NATS subject",
			logger.String("subject", sub.Subject),
			logger.String("queue_group", group))
	}
	return consumers, nil
}

// StartNSQ connects one consumer per topic. Broadcast topics use an
// ephemeral per-instance channel.
func (h *Handler) StartNSQ(cfg models.NSQConfig, instanceID string) ([]*nsqpkg.Consumer, error) {
	consumers := make([]*nsqpkg.Consumer, 0, len(h.Subscriptions()))
	stopAll := func() {
		for _, c := range consumers {
			c.Stop()
		}
	}

	for _, sub := range h.Subscriptions() {
		channel := cfg.ConsumerChannel
		if sub.Broadcast {
			channel = cfg.ConsumerChannel + "-" + instanceID + "#ephemeral"
		}
		consumer, err := nsqpkg.NewConsumer(sub.Subject, channel, sub.Handle)
		if err != nil {
			stopAll()
			return nil, err
		}
		if err := consumer.Connect(cfg.NSQDAddress, cfg.LookupdAddress); err != nil {
			consumer.Stop()
			stopAll()
			return nil, err
		}
		consumers = append(consumers, consumer)
		logger.Info("Subscribed to NSQ topic",
			logger.String("topic", sub.Subject),
			logger.String("channel", channel))
	}
	return consumers, nil
}
