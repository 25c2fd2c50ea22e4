package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carRepository struct {
	q queryer
}

const carColumns = `id, brand, model, year, license_plate, color, fuel_type, transmission,
	seats, doors, daily_price_cents, mileage_km, status,
	maintenance_threshold_km, last_maintenance_km, last_maintenance_date,
	is_active, COALESCE(description, ''), created_on, updated_on`

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO cars (brand, model, year, license_plate, color, fuel_type, transmission,
	            seats, doors, daily_price_cents, mileage_km, status,
	            maintenance_threshold_km, last_maintenance_km, is_active, description,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	          RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		car.Brand, car.Model, car.Year, car.LicensePlate, car.Color, car.FuelType, car.Transmission,
		car.Seats, car.Doors, car.DailyPriceCents, car.MileageKm, car.Status,
		car.MaintenanceThresholdKm, car.LastMaintenanceKm, car.IsActive, car.Description,
		now, now,
	).Scan(&car.ID, &car.CreatedOn, &car.UpdatedOn)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	car, err := scanCar(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return car, nil
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `UPDATE cars SET brand=$1, model=$2, year=$3, license_plate=$4, color=$5,
	            fuel_type=$6, transmission=$7, seats=$8, doors=$9, daily_price_cents=$10,
	            maintenance_threshold_km=$11, is_active=$12, description=$13, updated_on=$14
	          WHERE id=$15`
	_, err := r.q.ExecContext(ctx, query,
		car.Brand, car.Model, car.Year, car.LicensePlate, car.Color,
		car.FuelType, car.Transmission, car.Seats, car.Doors, car.DailyPriceCents,
		car.MaintenanceThresholdKm, car.IsActive, car.Description, time.Now(), car.ID)
	return err
}

func (r *carRepository) SetStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE cars SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	return err
}

func (r *carRepository) AdvanceMileage(ctx context.Context, id int32, km int32) error {
	// The WHERE clause keeps the odometer monotonic; a lower reading is a
	// silent no-op.
	_, err := r.q.ExecContext(ctx,
		`UPDATE cars SET mileage_km=$1, updated_on=$2 WHERE id=$3 AND mileage_km < $1`,
		km, time.Now(), id)
	return err
}

func (r *carRepository) RecordMaintenance(ctx context.Context, id int32, km int32, date time.Time) error {
	query := `UPDATE cars SET last_maintenance_km=$1, last_maintenance_date=$2,
	            mileage_km=GREATEST(mileage_km, $1), updated_on=$3
	          WHERE id=$4`
	_, err := r.q.ExecContext(ctx, query, km, date, time.Now(), id)
	return err
}

func (r *carRepository) List(ctx context.Context, f repository.CarFilter) ([]domain.Car, int32, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIdx := 1
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.ActiveOnly {
		where += " AND is_active = TRUE"
	}
	if f.Query != "" {
		where += fmt.Sprintf(" AND (brand ILIKE $%d OR model ILIKE $%d OR license_plate ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}
	if f.MaxPriceCents > 0 {
		where += fmt.Sprintf(" AND daily_price_cents <= $%d", argIdx)
		args = append(args, f.MaxPriceCents)
		argIdx++
	}

	var count int32
	if err := r.q.QueryRowContext(ctx, "SELECT count(*) FROM cars"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query := "SELECT " + carColumns + " FROM cars" + where +
		fmt.Sprintf(" ORDER BY brand, model LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, *car)
	}
	return cars, count, rows.Err()
}

func (r *carRepository) ListMaintenanceDue(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars
	          WHERE is_active = TRUE AND mileage_km - last_maintenance_km >= maintenance_threshold_km
	          ORDER BY mileage_km - last_maintenance_km DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *car)
	}
	return cars, rows.Err()
}

func scanCar(row rowScanner) (*domain.Car, error) {
	var car domain.Car
	var lastMaintDate sql.NullTime
	err := row.Scan(
		&car.ID, &car.Brand, &car.Model, &car.Year, &car.LicensePlate, &car.Color,
		&car.FuelType, &car.Transmission, &car.Seats, &car.Doors,
		&car.DailyPriceCents, &car.MileageKm, &car.Status,
		&car.MaintenanceThresholdKm, &car.LastMaintenanceKm, &lastMaintDate,
		&car.IsActive, &car.Description, &car.CreatedOn, &car.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if lastMaintDate.Valid {
		car.LastMaintenanceDate = &lastMaintDate.Time
	}
	return &car, nil
}
