package engagement

import (
	"context"

	"github.com/secretariat-suite/engagement-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// GetCounter reads one counter, cache-aside. A location that was never
// referenced comes back as a zero record; callers cannot tell the difference
// and should not try.
func (e *Engine) GetCounter(ctx context.Context, ref domain.LocationRef) (domain.CounterRecord, error) {
	key := cacheKeyCounter(ref)

	if e.cache != nil {
		var cached domain.CounterRecord
		found, err := e.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return cached, nil
		}
	}

	rec, err := e.store.Get(ctx, ref)
	if err != nil {
		return domain.CounterRecord{}, err
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, rec, e.ttlCounter); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return rec, nil
}

// TopCounters lists a category's most-visited locations for admin dashboards.
// Not cached: it is an operator view and wants fresh numbers.
func (e *Engine) TopCounters(ctx context.Context, cat domain.Category, limit int) ([]domain.CounterRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return e.store.TopByCategory(ctx, cat, limit)
}
