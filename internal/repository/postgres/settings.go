package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
)

type settingsRepository struct {
	q queryer
}

// GetRentalPolicy reads the singleton settings row; a missing row falls
// back to the seeded defaults.
func (r *settingsRepository) GetRentalPolicy(ctx context.Context) (*domain.RentalPolicy, error) {
	var p domain.RentalPolicy
	query := `SELECT minimum_rental_days, maximum_rental_days, advance_booking_days, cancellation_hours
	          FROM settings LIMIT 1`
	err := r.q.QueryRowContext(ctx, query).Scan(
		&p.MinimumRentalDays, &p.MaximumRentalDays, &p.AdvanceBookingDays, &p.CancellationHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			def := domain.DefaultRentalPolicy()
			return &def, nil
		}
		return nil, err
	}
	return &p, nil
}
