package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

type contractRepository struct {
	q queryer
}

func (r *contractRepository) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (reservation_id, contract_number, generated_by_kind, generated_by_id, created_on)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_on`
	return r.q.QueryRowContext(ctx, query,
		c.ReservationID, c.ContractNumber, c.GeneratedBy.Kind, c.GeneratedBy.ID, time.Now(),
	).Scan(&c.ID, &c.CreatedOn)
}

func (r *contractRepository) GetByReservation(ctx context.Context, reservationID int32) (*domain.Contract, error) {
	var c domain.Contract
	query := `SELECT id, reservation_id, contract_number, generated_by_kind, generated_by_id, created_on
	          FROM contracts WHERE reservation_id = $1`
	err := r.q.QueryRowContext(ctx, query, reservationID).Scan(
		&c.ID, &c.ReservationID, &c.ContractNumber, &c.GeneratedBy.Kind, &c.GeneratedBy.ID, &c.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contract for reservation %d: %w", reservationID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}
