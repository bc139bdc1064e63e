package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	locJSON, err := json.Marshal(e.Locations)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertEventSQL,
		e.ID, e.OwnerID, e.Title, e.Notes, e.EventDate, string(locJSON),
		e.Archived, e.ArchivedAt, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, getEventSQL, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	locJSON, err := json.Marshal(e.Locations)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, updateEventSQL,
		e.ID,
		e.Title, e.Notes, e.EventDate, string(locJSON),
		e.Archived, e.ArchivedAt, e.UpdatedAt,
	)
	return err
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteEventSQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("event not found")
	}
	return nil
}

func (r *EventRepo) List(ctx context.Context, page, pageSize int) ([]*domain.Event, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, listEventsSQL, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAll returns every event, archived included. The engagement engine's
// reconciliation scan depends on archived events still being present.
func (r *EventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listAllEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var locJSON []byte
	if err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Notes, &e.EventDate, &locJSON,
		&e.Archived, &e.ArchivedAt, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// Stored shape is loose; parse is best-effort and never fails the row
	// over unknown categories.
	locs, err := domain.ParseLocationSet(locJSON)
	if err != nil {
		return nil, err
	}
	e.Locations = locs
	return &e, nil
}
