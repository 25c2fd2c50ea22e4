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

type reservationRepository struct {
	q queryer
}

const reservationColumns = `id, client_id, car_id, pickup_date, return_date, actual_return_date,
	total_days, daily_rate_cents, total_price_cents, extra_charges_cents, final_price_cents,
	status, COALESCE(notes, ''), COALESCE(admin_notes, ''), km_at_pickup, km_at_return,
	fuel_at_pickup, fuel_at_return, pickup_location, return_location,
	approved_by_kind, approved_by_id, approved_at,
	COALESCE(rejection_reason, ''), COALESCE(cancellation_reason, ''), cancelled_at,
	created_on, updated_on`

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (client_id, car_id, pickup_date, return_date, total_days,
	            daily_rate_cents, total_price_cents, extra_charges_cents, final_price_cents,
	            status, notes, pickup_location, return_location, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		res.ClientID, res.CarID, res.PickupDate, res.ReturnDate, res.TotalDays,
		res.DailyRateCents, res.TotalPriceCents, res.ExtraChargesCents, res.FinalPriceCents,
		res.Status, res.Notes, res.PickupLocation, res.ReturnLocation, now, now,
	).Scan(&res.ID, &res.CreatedOn, &res.UpdatedOn)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	query := `UPDATE reservations SET
	            status=$1, actual_return_date=$2, extra_charges_cents=$3, final_price_cents=$4,
	            admin_notes=$5, km_at_pickup=$6, km_at_return=$7, fuel_at_pickup=$8, fuel_at_return=$9,
	            approved_by_kind=$10, approved_by_id=$11, approved_at=$12,
	            rejection_reason=$13, cancellation_reason=$14, cancelled_at=$15, updated_on=$16
	          WHERE id=$17`
	var approvedKind any
	var approvedID any
	if res.ApprovedBy != nil {
		approvedKind = string(res.ApprovedBy.Kind)
		approvedID = res.ApprovedBy.ID
	}
	_, err := r.q.ExecContext(ctx, query,
		res.Status, res.ActualReturnDate, res.ExtraChargesCents, res.FinalPriceCents,
		res.AdminNotes, res.KmAtPickup, res.KmAtReturn, res.FuelAtPickup, res.FuelAtReturn,
		approvedKind, approvedID, res.ApprovedAt,
		nullIfEmpty(res.RejectionReason), nullIfEmpty(res.CancellationReason), res.CancelledAt,
		time.Now(), res.ID)
	return err
}

// HasBlockingOverlap mirrors domain.Overlaps in SQL:
// pickup_A <= return_B AND return_A >= pickup_B, restricted to blocking
// statuses. Every availability call site goes through this one query.
func (r *reservationRepository) HasBlockingOverlap(ctx context.Context, carID int32, pickupDate, returnDate time.Time, excludeID int32) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM reservations
	            WHERE car_id = $1
	              AND status IN ('APPROVED', 'ACTIVE')
	              AND pickup_date <= $3
	              AND return_date >= $2
	              AND id <> $4)`
	var exists bool
	err := r.q.QueryRowContext(ctx, query, carID, pickupDate, returnDate, excludeID).Scan(&exists)
	return exists, err
}

func (r *reservationRepository) List(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIdx := 1
	if f.ClientID != 0 {
		where += fmt.Sprintf(" AND client_id = $%d", argIdx)
		args = append(args, f.ClientID)
		argIdx++
	}
	if f.CarID != 0 {
		where += fmt.Sprintf(" AND car_id = $%d", argIdx)
		args = append(args, f.CarID)
		argIdx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.FromDate != nil {
		where += fmt.Sprintf(" AND pickup_date >= $%d", argIdx)
		args = append(args, *f.FromDate)
		argIdx++
	}
	if f.ToDate != nil {
		where += fmt.Sprintf(" AND return_date <= $%d", argIdx)
		args = append(args, *f.ToDate)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM reservations" + where
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query := "SELECT " + reservationColumns + " FROM reservations" + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, count, rows.Err()
}

func (r *reservationRepository) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int32, error) {
	var count int32
	err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM reservations WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *reservationRepository) ListApprovedPickingUpOn(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status = 'APPROVED' AND pickup_date::date = $1::date
	          ORDER BY pickup_date`
	rows, err := r.q.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var actualReturn, approvedAt, cancelledAt sql.NullTime
	var kmPickup, kmReturn, approvedID sql.NullInt32
	var fuelPickup, fuelReturn, approvedKind sql.NullString

	err := row.Scan(
		&res.ID, &res.ClientID, &res.CarID, &res.PickupDate, &res.ReturnDate, &actualReturn,
		&res.TotalDays, &res.DailyRateCents, &res.TotalPriceCents, &res.ExtraChargesCents, &res.FinalPriceCents,
		&res.Status, &res.Notes, &res.AdminNotes, &kmPickup, &kmReturn,
		&fuelPickup, &fuelReturn, &res.PickupLocation, &res.ReturnLocation,
		&approvedKind, &approvedID, &approvedAt,
		&res.RejectionReason, &res.CancellationReason, &cancelledAt,
		&res.CreatedOn, &res.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	if actualReturn.Valid {
		res.ActualReturnDate = &actualReturn.Time
	}
	if approvedAt.Valid {
		res.ApprovedAt = &approvedAt.Time
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}
	if kmPickup.Valid {
		res.KmAtPickup = &kmPickup.Int32
	}
	if kmReturn.Valid {
		res.KmAtReturn = &kmReturn.Int32
	}
	if fuelPickup.Valid {
		fl := domain.FuelLevel(fuelPickup.String)
		res.FuelAtPickup = &fl
	}
	if fuelReturn.Valid {
		fl := domain.FuelLevel(fuelReturn.String)
		res.FuelAtReturn = &fl
	}
	if approvedKind.Valid && approvedID.Valid {
		res.ApprovedBy = &domain.Actor{Kind: domain.ActorKind(approvedKind.String), ID: approvedID.Int32}
	}
	return &res, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
