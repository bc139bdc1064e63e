package engagement

import (
	"context"
	"sort"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// Summary reports what a reconcile pass covered.
type Summary struct {
	EventsProcessed  int `json:"events_processed"`
	LocationsUpdated int `json:"locations_updated"`
}

// ReconcileAll discards every counter and rebuilds them from the full event
// set (archived included). This is where ground truth is defined: after a
// successful pass, each counter equals the number of non-deleted events
// referencing that location.
//
// Only one pass may run at a time; a second invocation is rejected with
// reconcile_in_progress. Running concurrently with heavy write traffic
// yields an eventually-consistent snapshot; a later pass corrects any skew.
// The context is checked between per-category passes, so cancellation leaves
// every completed category fully reset and recounted.
func (e *Engine) ReconcileAll(ctx context.Context) (Summary, error) {
	if !e.reconcileMu.TryLock() {
		return Summary{}, domain.ErrReconcileInProgress()
	}
	defer e.reconcileMu.Unlock()

	started := e.clock.Now()

	events, err := e.events.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}

	// In-memory tally: occurrences and most recent event date per ref.
	counts := map[domain.LocationRef]int64{}
	lastVisit := map[domain.LocationRef]time.Time{}
	for _, ev := range events {
		for _, ref := range ev.Locations.Refs() {
			counts[ref]++
			if ev.EventDate.After(lastVisit[ref]) {
				lastVisit[ref] = ev.EventDate
			}
		}
	}

	// Phase 1: zero out every category.
	for _, cat := range domain.Categories {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		if err := e.store.ResetAll(ctx, cat); err != nil {
			return Summary{}, err
		}
	}

	// Phase 2: write the tally back, category by category, ids ascending,
	// so output (and tests) are reproducible.
	updated := 0
	for _, cat := range domain.Categories {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		for _, ref := range sortedRefs(counts, cat) {
			visit := lastVisit[ref]
			if err := e.store.SetCountAndDate(ctx, ref, counts[ref], &visit); err != nil {
				return Summary{}, err
			}
			e.invalidate(ctx, ref)
			updated++
		}
	}

	summary := Summary{EventsProcessed: len(events), LocationsUpdated: updated}

	zlog.Info().
		Int("events_processed", summary.EventsProcessed).
		Int("locations_updated", summary.LocationsUpdated).
		Dur("took", e.clock.Now().Sub(started)).
		Msg("visit counters reconciled")

	e.notify(ctx, RouteReconciled, ReconciledPayload(summary))
	return summary, nil
}

func sortedRefs(counts map[domain.LocationRef]int64, cat domain.Category) []domain.LocationRef {
	var refs []domain.LocationRef
	for ref := range counts {
		if ref.Category == cat {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}
