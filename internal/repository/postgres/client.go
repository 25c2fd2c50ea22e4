package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

type clientRepository struct {
	q queryer
}

const clientColumns = `id, name, email, phone_number, national_id, password_hash,
	license_number, license_expiry, score, total_reservations,
	is_blocked, COALESCE(block_reason, ''), created_on, updated_on`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `INSERT INTO clients (name, email, phone_number, national_id, password_hash,
	            license_number, license_expiry, score, total_reservations, is_blocked,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		client.Name, client.Email, client.PhoneNumber, client.NationalID, client.PasswordHash,
		client.License.Number, client.License.ExpiryDate, client.Score, client.TotalReservations,
		client.IsBlocked, now, now,
	).Scan(&client.ID, &client.CreatedOn, &client.UpdatedOn)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`
	client, err := scanClient(r.q.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", email, domain.ErrNotFound)
		}
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients SET name=$1, email=$2, phone_number=$3, national_id=$4,
	            license_number=$5, license_expiry=$6, is_blocked=$7, block_reason=$8, updated_on=$9
	          WHERE id=$10`
	_, err := r.q.ExecContext(ctx, query,
		client.Name, client.Email, client.PhoneNumber, client.NationalID,
		client.License.Number, client.License.ExpiryDate,
		client.IsBlocked, nullIfEmpty(client.BlockReason), time.Now(), client.ID)
	return err
}

func (r *clientRepository) UpdateScore(ctx context.Context, clientID, score int32) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE clients SET score=$1, updated_on=$2 WHERE id=$3`, score, time.Now(), clientID)
	return err
}

func (r *clientRepository) IncrementTotalReservations(ctx context.Context, clientID int32) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE clients SET total_reservations = total_reservations + 1, updated_on=$1 WHERE id=$2`,
		time.Now(), clientID)
	return err
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.NationalID, &c.PasswordHash,
		&c.License.Number, &c.License.ExpiryDate, &c.Score, &c.TotalReservations,
		&c.IsBlocked, &c.BlockReason, &c.CreatedOn, &c.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
