package service

import (
	"context"
	"fmt"
	"log/slog"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type maintenanceService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewMaintenanceService(store repository.Store) MaintenanceService {
	return &maintenanceService{
		store:  store,
		logger: logger.WithService("maintenance"),
	}
}

func (s *maintenanceService) Record(ctx context.Context, actor domain.Actor, in RecordMaintenanceInput) (*domain.MaintenanceRecord, error) {
	if !actor.IsOperator() {
		return nil, fmt.Errorf("recording maintenance requires an operator: %w", domain.ErrForbidden)
	}
	if in.CostCents < 0 {
		return nil, fmt.Errorf("maintenance cost cannot be negative: %w", domain.ErrValidation)
	}
	if in.KmAtMaintenance < 0 {
		return nil, fmt.Errorf("odometer cannot be negative: %w", domain.ErrValidation)
	}

	rec := &domain.MaintenanceRecord{
		CarID:           in.CarID,
		Date:            in.Date,
		Type:            in.Type,
		Description:     in.Description,
		CostCents:       in.CostCents,
		KmAtMaintenance: in.KmAtMaintenance,
		PerformedBy:     in.PerformedBy,
		InvoiceNumber:   in.InvoiceNumber,
		Notes:           in.Notes,
		CreatedBy:       actor,
	}

	// The record insert and the car's maintenance bookkeeping commit
	// together under the car's lock.
	err := s.store.AtomicCar(ctx, in.CarID, func(tx repository.Store) error {
		if _, err := tx.Cars().GetByID(ctx, in.CarID); err != nil {
			return err
		}
		if err := tx.Maintenance().Create(ctx, rec); err != nil {
			return err
		}
		return tx.Cars().RecordMaintenance(ctx, in.CarID, in.KmAtMaintenance, in.Date)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance recorded", "car_id", in.CarID, "type", in.Type, "km", in.KmAtMaintenance)
	return rec, nil
}

func (s *maintenanceService) Get(ctx context.Context, id int32) (*domain.MaintenanceRecord, error) {
	return s.store.Maintenance().GetByID(ctx, id)
}

func (s *maintenanceService) List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceRecord, int32, error) {
	return s.store.Maintenance().List(ctx, f)
}

func (s *maintenanceService) ListDueCars(ctx context.Context) ([]domain.Car, error) {
	return s.store.Cars().ListMaintenanceDue(ctx)
}
