package engagement

import (
	"context"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

// ApplyEdit adjusts counters after an event's location selections were
// replaced: +1 for refs that appeared, -1 for refs that disappeared. Refs
// present in both selections are untouched, which is what keeps plain edits
// from double counting.
func (e *Engine) ApplyEdit(ctx context.Context, ev *domain.Event, oldSet domain.LocationSet) error {
	added, removed := domain.DiffLocationSets(oldSet, ev.Locations)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	date := ev.EventDate

	var firstErr error
	for _, ref := range added {
		if err := e.applyDelta(ctx, ev.ID, ref, +1, &date); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, ref := range removed {
		if err := e.applyDelta(ctx, ev.ID, ref, -1, nil); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
