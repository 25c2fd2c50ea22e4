package postgres

import (
	"context"
	"encoding/json"
	"time"

	"carrental-backend/internal/domain"
)

type notificationRepository struct {
	q queryer
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	data, err := json.Marshal(note.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (recipient_kind, recipient_id, type, title, message, data, link, is_read, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	          RETURNING id, created_on`
	return r.q.QueryRowContext(ctx, query,
		note.Recipient.Kind, note.Recipient.ID, note.Type, note.Title, note.Message,
		data, nullIfEmpty(note.Link), time.Now(),
	).Scan(&note.ID, &note.CreatedOn)
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipient domain.Actor, page, pageSize int32) ([]domain.Notification, int32, error) {
	var count int32
	err := r.q.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE recipient_kind = $1 AND recipient_id = $2`,
		recipient.Kind, recipient.ID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query := `SELECT id, recipient_kind, recipient_id, type, title, message, data, COALESCE(link, ''), is_read, created_on
	          FROM notifications WHERE recipient_kind = $1 AND recipient_id = $2
	          ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.QueryContext(ctx, query, recipient.Kind, recipient.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.Recipient.Kind, &n.Recipient.ID, &n.Type, &n.Title,
			&n.Message, &data, &n.Link, &n.IsRead, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id int32, recipient domain.Actor) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_kind = $2 AND recipient_id = $3`,
		id, recipient.Kind, recipient.ID)
	return err
}
