package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

// CounterStore persists visit counters, one table per location category:
// <category>_visit_counters(location_id, visit_count, last_visit_date).
type CounterStore struct {
	db *sql.DB
}

func NewCounterStore(db *sql.DB) *CounterStore { return &CounterStore{db: db} }

// counterTable maps a category to its table. The switch is exhaustive over
// the fixed enum; table names are never built from request input.
func counterTable(cat domain.Category) string {
	switch cat {
	case domain.CategoryDistrict:
		return "district_visit_counters"
	case domain.CategoryTown:
		return "town_visit_counters"
	case domain.CategoryNeighborhood:
		return "neighborhood_visit_counters"
	case domain.CategoryVillage:
		return "village_visit_counters"
	case domain.CategorySTK:
		return "stk_visit_counters"
	case domain.CategoryMosque:
		return "mosque_visit_counters"
	case domain.CategoryEvent:
		return "event_visit_counters"
	}
	panic(fmt.Sprintf("postgres: unknown location category %q", cat))
}

// Get returns the stored record, or a zero record when the location was
// never referenced. Callers must not distinguish the two.
func (s *CounterStore) Get(ctx context.Context, ref domain.LocationRef) (domain.CounterRecord, error) {
	query := fmt.Sprintf(
		`SELECT visit_count, last_visit_date FROM %s WHERE location_id = $1`,
		counterTable(ref.Category),
	)

	rec := domain.CounterRecord{Ref: ref}
	err := s.db.QueryRowContext(ctx, query, ref.ID).Scan(&rec.VisitCount, &rec.LastVisitAt)
	if err == sql.ErrNoRows {
		return domain.CounterRecord{Ref: ref}, nil
	}
	if err != nil {
		return domain.CounterRecord{}, fmt.Errorf("get counter %s: %w", ref, err)
	}
	return rec, nil
}

// ApplyDelta is a single-statement read-modify-write: the database does the
// add, so concurrent deltas on the same ref never lose updates. The count is
// clamped at zero. A positive delta moves last_visit_date forward only
// (monotonic); a negative delta leaves it alone. The row is created on first
// touch and never deleted.
func (s *CounterStore) ApplyDelta(ctx context.Context, ref domain.LocationRef, delta int64, occurredAt *time.Time) error {
	table := counterTable(ref.Category)
	query := fmt.Sprintf(`
INSERT INTO %s (location_id, visit_count, last_visit_date)
VALUES ($1, GREATEST($2::bigint, 0), $3::timestamptz)
ON CONFLICT (location_id) DO UPDATE SET
  visit_count = GREATEST(%s.visit_count + $2::bigint, 0),
  last_visit_date = CASE
    WHEN $2::bigint > 0
      THEN GREATEST(COALESCE(%s.last_visit_date, $3::timestamptz), $3::timestamptz)
    ELSE %s.last_visit_date
  END
`, table, table, table, table)

	if _, err := s.db.ExecContext(ctx, query, ref.ID, delta, occurredAt); err != nil {
		return fmt.Errorf("apply delta %+d to %s: %w", delta, ref, err)
	}
	return nil
}

// ResetAll zeroes every count in a category, preserving last_visit_date.
// First phase of a reconcile; must not interleave with incremental deltas on
// the same category (the engine serializes reconciles for this reason).
func (s *CounterStore) ResetAll(ctx context.Context, cat domain.Category) error {
	query := fmt.Sprintf(`UPDATE %s SET visit_count = 0`, counterTable(cat))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("reset %s counters: %w", cat, err)
	}
	return nil
}

// SetCountAndDate unconditionally overwrites a counter from the reconcile
// tally.
func (s *CounterStore) SetCountAndDate(ctx context.Context, ref domain.LocationRef, count int64, lastVisit *time.Time) error {
	query := fmt.Sprintf(`
INSERT INTO %s (location_id, visit_count, last_visit_date)
VALUES ($1, $2, $3::timestamptz)
ON CONFLICT (location_id) DO UPDATE SET
  visit_count = EXCLUDED.visit_count,
  last_visit_date = EXCLUDED.last_visit_date
`, counterTable(ref.Category))

	if _, err := s.db.ExecContext(ctx, query, ref.ID, count, lastVisit); err != nil {
		return fmt.Errorf("set counter %s: %w", ref, err)
	}
	return nil
}

// TopByCategory lists the most-visited locations of one category.
func (s *CounterStore) TopByCategory(ctx context.Context, cat domain.Category, limit int) ([]domain.CounterRecord, error) {
	query := fmt.Sprintf(`
SELECT location_id, visit_count, last_visit_date
FROM %s
ORDER BY visit_count DESC, location_id ASC
LIMIT $1
`, counterTable(cat))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top %s counters: %w", cat, err)
	}
	defer rows.Close()

	var out []domain.CounterRecord
	for rows.Next() {
		rec := domain.CounterRecord{Ref: domain.LocationRef{Category: cat}}
		if err := rows.Scan(&rec.Ref.ID, &rec.VisitCount, &rec.LastVisitAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
