package postgres

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type scoreRepository struct {
	q queryer
}

func (r *scoreRepository) Create(ctx context.Context, entry *domain.ScoreEntry) error {
	query := `INSERT INTO score_entries (client_id, reservation_id, delta, reason, comment,
	            created_by_kind, created_by_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_on`
	return r.q.QueryRowContext(ctx, query,
		entry.ClientID, entry.ReservationID, entry.Delta, entry.Reason, entry.Comment,
		entry.CreatedBy.Kind, entry.CreatedBy.ID, time.Now(),
	).Scan(&entry.ID, &entry.CreatedOn)
}

func (r *scoreRepository) SumByClient(ctx context.Context, clientID int32) (int32, error) {
	var sum int32
	query := `SELECT COALESCE(SUM(delta), 0) FROM score_entries WHERE client_id = $1`
	err := r.q.QueryRowContext(ctx, query, clientID).Scan(&sum)
	return sum, err
}

func (r *scoreRepository) ListByClient(ctx context.Context, clientID int32, page, pageSize int32) ([]domain.ScoreEntry, int32, error) {
	var count int32
	err := r.q.QueryRowContext(ctx,
		`SELECT count(*) FROM score_entries WHERE client_id = $1`, clientID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query := `SELECT id, client_id, reservation_id, delta, reason, COALESCE(comment, ''),
	            created_by_kind, created_by_id, created_on
	          FROM score_entries WHERE client_id = $1
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.QueryContext(ctx, query, clientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ScoreEntry
	for rows.Next() {
		var e domain.ScoreEntry
		if err := rows.Scan(&e.ID, &e.ClientID, &e.ReservationID, &e.Delta, &e.Reason, &e.Comment,
			&e.CreatedBy.Kind, &e.CreatedBy.ID, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
