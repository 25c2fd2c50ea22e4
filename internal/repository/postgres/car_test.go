package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func carRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "brand", "model", "year", "license_plate", "color", "fuel_type", "transmission",
		"seats", "doors", "daily_price_cents", "mileage_km", "status",
		"maintenance_threshold_km", "last_maintenance_km", "last_maintenance_date",
		"is_active", "description", "created_on", "updated_on",
	}).AddRow(
		7, "Toyota", "Corolla", 2022, "CA1234BH", "white", "PETROL", "AUTOMATIC",
		5, 4, 8000, 42000, "AVAILABLE",
		10000, 40000, nil,
		true, "", now, now,
	)
}

func TestCarRepositoryGetByID(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery("FROM cars WHERE id = \\$1").
		WithArgs(int32(7)).
		WillReturnRows(carRows())

	car, err := store.Cars().GetByID(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), car.ID)
	assert.Equal(t, int32(42000), car.MileageKm)
	assert.False(t, car.IsMaintenanceDue())
}

func TestCarRepositoryAdvanceMileage(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	// The guard in the WHERE clause makes lower readings a no-op.
	mock.ExpectExec("UPDATE cars SET mileage_km=\\$1, updated_on=\\$2 WHERE id=\\$3 AND mileage_km < \\$1").
		WithArgs(int32(42350), sqlmock.AnyArg(), int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Cars().AdvanceMileage(ctx, 7, 42350)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepositoryListMaintenanceDue(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery("maintenance_threshold_km").
		WillReturnRows(carRows())

	cars, err := store.Cars().ListMaintenanceDue(ctx)
	assert.NoError(t, err)
	assert.Len(t, cars, 1)
}
