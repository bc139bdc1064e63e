package engagement

import (
	"context"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// CounterStore is the persistence boundary for visit counters, one logical
// table per category.
type CounterStore interface {
	// Get returns the stored record, or a zero record when the ref was
	// never referenced.
	Get(ctx context.Context, ref domain.LocationRef) (domain.CounterRecord, error)

	// ApplyDelta atomically adds delta to the ref's count, clamped at 0.
	// A positive delta moves last_visit_date forward to occurredAt when
	// occurredAt is more recent; a negative delta leaves it untouched.
	ApplyDelta(ctx context.Context, ref domain.LocationRef, delta int64, occurredAt *time.Time) error

	// ResetAll zeroes every count in a category, preserving last_visit_date.
	// First phase of reconciliation.
	ResetAll(ctx context.Context, cat domain.Category) error

	// SetCountAndDate overwrites a ref's count and visit date. Second phase
	// of reconciliation.
	SetCountAndDate(ctx context.Context, ref domain.LocationRef, count int64, lastVisit *time.Time) error

	// TopByCategory lists the most-visited locations of a category,
	// visit_count descending then location id ascending.
	TopByCategory(ctx context.Context, cat domain.Category, limit int) ([]domain.CounterRecord, error)
}

// EventSource supplies every event, archived included, for reconciliation
// scans. Archived events still count; only deleted ones vanish.
type EventSource interface {
	ListAll(ctx context.Context) ([]*domain.Event, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NotificationPublisher emits best-effort JSON notifications. Delivery
// failures are logged, never propagated: counters self-heal via reconcile.
type NotificationPublisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	return nil
}
