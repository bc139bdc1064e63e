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

func TestCounterStore_ApplyDelta(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewCounterStore(db)
	now := time.Now().UTC()
	ref := domain.NewLocationRef(domain.CategoryMosque, 12)

	t.Run("increment_carries_visit_date", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO mosque_visit_counters").
			WithArgs(int64(12), int64(1), &now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.ApplyDelta(context.Background(), ref, +1, &now))
	})

	t.Run("decrement_has_no_visit_date", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO mosque_visit_counters").
			WithArgs(int64(12), int64(-1), nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.ApplyDelta(context.Background(), ref, -1, nil))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewCounterStore(db)
	ref := domain.NewLocationRef(domain.CategoryDistrict, 5)

	t.Run("existing_row", func(t *testing.T) {
		visited := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"visit_count", "last_visit_date"}).
			AddRow(int64(3), visited)

		mock.ExpectQuery("SELECT visit_count, last_visit_date FROM district_visit_counters").
			WithArgs(int64(5)).
			WillReturnRows(rows)

		rec, err := store.Get(context.Background(), ref)
		assert.NoError(t, err)
		assert.EqualValues(t, 3, rec.VisitCount)
		assert.NotNil(t, rec.LastVisitAt)
	})

	t.Run("missing_row_reads_as_zero_record", func(t *testing.T) {
		mock.ExpectQuery("SELECT visit_count, last_visit_date FROM district_visit_counters").
			WithArgs(int64(5)).
			WillReturnError(sql.ErrNoRows)

		rec, err := store.Get(context.Background(), ref)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, rec.VisitCount)
		assert.Nil(t, rec.LastVisitAt)
		assert.Equal(t, ref, rec.Ref)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterStore_ResetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewCounterStore(db)

	mock.ExpectExec("UPDATE village_visit_counters SET visit_count = 0").
		WillReturnResult(sqlmock.NewResult(0, 7))

	assert.NoError(t, store.ResetAll(context.Background(), domain.CategoryVillage))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterStore_SetCountAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewCounterStore(db)
	now := time.Now().UTC()
	ref := domain.NewLocationRef(domain.CategorySTK, 7)

	mock.ExpectExec("INSERT INTO stk_visit_counters").
		WithArgs(int64(7), int64(4), &now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.SetCountAndDate(context.Background(), ref, 4, &now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterStore_TopByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewCounterStore(db)
	visited := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"location_id", "visit_count", "last_visit_date"}).
		AddRow(int64(12), int64(9), visited).
		AddRow(int64(13), int64(2), nil)

	mock.ExpectQuery("SELECT location_id, visit_count, last_visit_date").
		WithArgs(10).
		WillReturnRows(rows)

	recs, err := store.TopByCategory(context.Background(), domain.CategoryMosque, 10)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, domain.CategoryMosque, recs[0].Ref.Category)
	assert.EqualValues(t, 12, recs[0].Ref.ID)
	assert.EqualValues(t, 9, recs[0].VisitCount)
	assert.Nil(t, recs[1].LastVisitAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterTable_Exhaustive(t *testing.T) {
	for _, cat := range domain.Categories {
		assert.NotPanics(t, func() { counterTable(cat) })
	}
	assert.Panics(t, func() { counterTable("province") })
}
