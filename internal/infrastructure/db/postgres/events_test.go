package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/secretariat-suite/engagement-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEventRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEventRepo(db)
	now := time.Now().UTC()
	e := &domain.Event{
		ID:        "evt_1",
		OwnerID:   "user_1",
		Title:     "Neighborhood visit",
		EventDate: now,
		Locations: domain.NewLocationSet(map[domain.Category][]int64{
			domain.CategoryDistrict: {5},
		}),
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO events").
		WithArgs(
			e.ID, e.OwnerID, e.Title, e.Notes, e.EventDate, `{"district":[5]}`,
			e.Archived, e.ArchivedAt, e.CreatedAt, e.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEventRepo(db)
	eventID := "evt_123"

	t.Run("success_mapping", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{
			"id", "owner_id", "title", "notes", "event_date", "locations",
			"archived", "archived_at", "created_at", "updated_at",
		}).AddRow(
			eventID, "owner_1", "Title", "", now,
			[]byte(`{"district":[5],"mosque":["12",13],"province":[99]}`),
			false, nil, now, now,
		)

		mock.ExpectQuery("SELECT (.+) FROM events WHERE id =").
			WithArgs(eventID).
			WillReturnRows(rows)

		ev, err := repo.GetByID(context.Background(), eventID)
		assert.NoError(t, err)
		assert.Equal(t, eventID, ev.ID)
		// loose storage shape normalized on read, unknown category dropped
		assert.Equal(t, []int64{5}, ev.Locations.IDs(domain.CategoryDistrict))
		assert.Equal(t, []int64{12, 13}, ev.Locations.IDs(domain.CategoryMosque))
		assert.Equal(t, 3, ev.Locations.Len())
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("none").WillReturnError(sql.ErrNoRows)

		ev, err := repo.GetByID(context.Background(), "none")
		assert.Error(t, err)
		assert.Nil(t, ev)
		assert.Contains(t, err.Error(), "event not found")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEventRepo(db)

	t.Run("ok", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM events").
			WithArgs("evt_1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), "evt_1"))
	})

	t.Run("missing_row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM events").
			WithArgs("evt_404").
			WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Delete(context.Background(), "evt_404")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not_found")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewEventRepo(db)
	now := time.Now().UTC()
	archivedAt := now.Add(-time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "title", "notes", "event_date", "locations",
		"archived", "archived_at", "created_at", "updated_at",
	}).
		AddRow("evt_1", "o1", "A", "", now, []byte(`{"mosque":[12]}`), false, nil, now, now).
		AddRow("evt_2", "o1", "B", "", now, []byte(`{"mosque":[12]}`), true, archivedAt, now, now)

	mock.ExpectQuery("SELECT (.+) FROM events").WillReturnRows(rows)

	events, err := repo.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, events, 2, "archived events are included in the reconcile scan")
	assert.True(t, events[1].Archived)

	assert.NoError(t, mock.ExpectationsWereMet())
}
