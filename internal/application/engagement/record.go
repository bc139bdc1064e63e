package engagement

import (
	"context"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// RecordEvent applies +1 to every location the event touches. Call exactly
// once, at event creation; edits go through ApplyEdit so unchanged selections
// are never counted twice.
//
// A store failure on one ref does not stop the remaining refs: partial
// application plus a later reconcile beats stopping halfway. The first
// failure is returned so the caller can log the drift.
func (e *Engine) RecordEvent(ctx context.Context, ev *domain.Event) error {
	refs := ev.Locations.Refs()
	date := ev.EventDate

	var firstErr error
	for _, ref := range refs {
		if err := e.applyDelta(ctx, ev.ID, ref, +1, &date); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	if len(refs) > 0 {
		e.notify(ctx, RouteEventRecorded, EventCountedPayload{EventID: ev.ID, Locations: len(refs)})
	}
	return nil
}

// applyDelta is the single write path for incremental counter updates: one
// atomic store mutation, cache invalidation, and error wrapping with enough
// context (event id, location ref) to drive a manual reconcile.
func (e *Engine) applyDelta(ctx context.Context, eventID string, ref domain.LocationRef, delta int64, occurredAt *time.Time) error {
	if err := e.store.ApplyDelta(ctx, ref, delta, occurredAt); err != nil {
		zlog.Error().Err(err).
			Str("event_id", eventID).
			Str("location", ref.String()).
			Int64("delta", delta).
			Msg("visit count update failed")
		return domain.ErrCounterUnavailable("visit count update failed", map[string]string{
			"event_id": eventID,
			"location": ref.String(),
		})
	}
	e.invalidate(ctx, ref)
	return nil
}

func (e *Engine) invalidate(ctx context.Context, ref domain.LocationRef) {
	if e.cache == nil {
		return
	}
	key := cacheKeyCounter(ref)
	if err := e.cache.Delete(ctx, key); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
