package engagement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

const (
	NotificationVersion  = 1
	NotificationProducer = "engagement-service"

	RouteEventRecorded  = "engagement.event.recorded"
	RouteEventRetracted = "engagement.event.retracted"
	RouteReconciled     = "engagement.reconciled"
)

type NotificationEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

type EventCountedPayload struct {
	EventID   string `json:"event_id"`
	Locations int    `json:"locations"`
}

type ReconciledPayload struct {
	EventsProcessed  int `json:"events_processed"`
	LocationsUpdated int `json:"locations_updated"`
}

// notify publishes fire-and-forget. Counter notifications are advisory; a
// lost message is corrected by the next reconcile, so failures only warn.
func (e *Engine) notify(ctx context.Context, routingKey string, payload any) {
	messageID := uuid.NewString()
	env := NotificationEnvelope[any]{
		Version:    NotificationVersion,
		Producer:   NotificationProducer,
		MessageID:  messageID,
		OccurredAt: e.clock.Now().UTC(),
		Payload:    payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Msg("notification marshal failed")
		return
	}
	if err := e.pub.PublishEvent(ctx, routingKey, messageID, body); err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Msg("notification publish failed")
	}
}
