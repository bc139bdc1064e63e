package engagement

import (
	"context"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

// RetractEvent applies -1 to every location the event touches. Call exactly
// once, at hard deletion (the event must already be archived; archiving alone
// never decrements). The store clamps at zero, so retracting an event that
// was never recorded cannot push a counter negative; it may under-count, and
// reconcile is the authoritative fix.
//
// last_visit_date is deliberately not rolled back.
func (e *Engine) RetractEvent(ctx context.Context, ev *domain.Event) error {
	refs := ev.Locations.Refs()

	var firstErr error
	for _, ref := range refs {
		if err := e.applyDelta(ctx, ev.ID, ref, -1, nil); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	if len(refs) > 0 {
		e.notify(ctx, RouteEventRetracted, EventCountedPayload{EventID: ev.ID, Locations: len(refs)})
	}
	return nil
}
