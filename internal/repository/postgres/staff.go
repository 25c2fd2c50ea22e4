package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental-backend/internal/domain"
)

type staffRepository struct {
	q queryer
}

func (r *staffRepository) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	var s domain.Staff
	query := `SELECT id, kind, name, email, password_hash, is_active FROM staff WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Kind, &s.Name, &s.Email, &s.PasswordHash, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("staff %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	var s domain.Staff
	query := `SELECT id, kind, name, email, password_hash, is_active FROM staff WHERE email = $1`
	err := r.q.QueryRowContext(ctx, query, email).Scan(&s.ID, &s.Kind, &s.Name, &s.Email, &s.PasswordHash, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("staff %s: %w", email, domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) ListActive(ctx context.Context) ([]domain.Staff, error) {
	query := `SELECT id, kind, name, email, password_hash, is_active FROM staff WHERE is_active = TRUE ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []domain.Staff
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.Kind, &s.Name, &s.Email, &s.PasswordHash, &s.IsActive); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}
