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

type maintenanceRepository struct {
	q queryer
}

const maintenanceColumns = `id, car_id, date, type, COALESCE(description, ''), cost_cents,
	km_at_maintenance, COALESCE(performed_by, ''), COALESCE(invoice_number, ''), COALESCE(notes, ''),
	created_by_kind, created_by_id, created_on`

func (r *maintenanceRepository) Create(ctx context.Context, rec *domain.MaintenanceRecord) error {
	query := `INSERT INTO maintenance_records (car_id, date, type, description, cost_cents,
	            km_at_maintenance, performed_by, invoice_number, notes,
	            created_by_kind, created_by_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_on`
	return r.q.QueryRowContext(ctx, query,
		rec.CarID, rec.Date, rec.Type, nullIfEmpty(rec.Description), rec.CostCents,
		rec.KmAtMaintenance, nullIfEmpty(rec.PerformedBy), nullIfEmpty(rec.InvoiceNumber), nullIfEmpty(rec.Notes),
		rec.CreatedBy.Kind, rec.CreatedBy.ID, time.Now(),
	).Scan(&rec.ID, &rec.CreatedOn)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE id = $1`
	rec, err := scanMaintenance(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("maintenance record %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *maintenanceRepository) List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceRecord, int32, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIdx := 1
	if f.CarID != 0 {
		where += fmt.Sprintf(" AND car_id = $%d", argIdx)
		args = append(args, f.CarID)
		argIdx++
	}
	if f.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, f.Type)
		argIdx++
	}
	if f.FromDate != nil {
		where += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *f.FromDate)
		argIdx++
	}
	if f.ToDate != nil {
		where += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *f.ToDate)
		argIdx++
	}

	var count int32
	if err := r.q.QueryRowContext(ctx, "SELECT count(*) FROM maintenance_records"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	query := "SELECT " + maintenanceColumns + " FROM maintenance_records" + where +
		fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.MaintenanceRecord
	for rows.Next() {
		rec, err := scanMaintenance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	return records, count, rows.Err()
}

func scanMaintenance(row rowScanner) (*domain.MaintenanceRecord, error) {
	var rec domain.MaintenanceRecord
	err := row.Scan(
		&rec.ID, &rec.CarID, &rec.Date, &rec.Type, &rec.Description, &rec.CostCents,
		&rec.KmAtMaintenance, &rec.PerformedBy, &rec.InvoiceNumber, &rec.Notes,
		&rec.CreatedBy.Kind, &rec.CreatedBy.ID, &rec.CreatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
