package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

func newMockDB(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func reservationRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "client_id", "car_id", "pickup_date", "return_date", "actual_return_date",
		"total_days", "daily_rate_cents", "total_price_cents", "extra_charges_cents", "final_price_cents",
		"status", "notes", "admin_notes", "km_at_pickup", "km_at_return",
		"fuel_at_pickup", "fuel_at_return", "pickup_location", "return_location",
		"approved_by_kind", "approved_by_id", "approved_at",
		"rejection_reason", "cancellation_reason", "cancelled_at",
		"created_on", "updated_on",
	}).AddRow(
		10, 42, 7, now, now.AddDate(0, 0, 4), nil,
		4, 8000, 32000, 0, 32000,
		"PENDING", "", "", nil, nil,
		nil, nil, "Airport", "Airport",
		nil, nil, nil,
		"", "", nil,
		now, now,
	)
}

func TestReservationRepositoryCreate(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()
	now := time.Now()

	res := &domain.Reservation{
		ClientID:        42,
		CarID:           7,
		PickupDate:      now,
		ReturnDate:      now.AddDate(0, 0, 4),
		TotalDays:       4,
		DailyRateCents:  8000,
		TotalPriceCents: 32000,
		FinalPriceCents: 32000,
		Status:          domain.ReservationStatusPending,
	}

	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(res.ClientID, res.CarID, res.PickupDate, res.ReturnDate, res.TotalDays,
			res.DailyRateCents, res.TotalPriceCents, res.ExtraChargesCents, res.FinalPriceCents,
			res.Status, res.Notes, res.PickupLocation, res.ReturnLocation, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).AddRow(10, now, now))

	err := store.Reservations().Create(ctx, res)
	assert.NoError(t, err)
	assert.Equal(t, int32(10), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryGetByID(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("FROM reservations WHERE id = \\$1").
			WithArgs(int32(10)).
			WillReturnRows(reservationRows())

		res, err := store.Reservations().GetByID(ctx, 10)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), res.ID)
		assert.Equal(t, domain.ReservationStatusPending, res.Status)
		assert.Nil(t, res.ApprovedBy)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM reservations WHERE id = \\$1").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.Reservations().GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReservationRepositoryHasBlockingOverlap(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()
	pickup := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	ret := pickup.AddDate(0, 0, 4)

	t.Run("overlap exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7), pickup, ret, int32(0)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		blocked, err := store.Reservations().HasBlockingOverlap(ctx, 7, pickup, ret, 0)
		assert.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("no overlap", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(7), pickup, ret, int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		blocked, err := store.Reservations().HasBlockingOverlap(ctx, 7, pickup, ret, 10)
		assert.NoError(t, err)
		assert.False(t, blocked)
	})
}

func TestReservationRepositoryList(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations").
		WithArgs(int32(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM reservations").
		WithArgs(int32(42), int32(10), int32(0)).
		WillReturnRows(reservationRows())

	items, total, err := store.Reservations().List(ctx, repository.ReservationFilter{ClientID: 42, Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomicCarCommitsOnSuccess(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM cars WHERE id = \\$1 FOR UPDATE").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM reservations WHERE status = \\$1").
		WithArgs(domain.ReservationStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	err := store.AtomicCar(ctx, 7, func(tx repository.Store) error {
		count, err := tx.Reservations().CountByStatus(ctx, domain.ReservationStatusPending)
		assert.Equal(t, int32(3), count)
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomicCarRollsBackOnError(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM cars WHERE id = \\$1 FOR UPDATE").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectRollback()

	err := store.AtomicCar(ctx, 7, func(tx repository.Store) error {
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomicCarMissingCar(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM cars WHERE id = \\$1 FOR UPDATE").
		WithArgs(int32(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := store.AtomicCar(ctx, 404, func(tx repository.Store) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
