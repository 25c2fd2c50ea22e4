package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type carService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewCarService(store repository.Store) CarService {
	return &carService{
		store:  store,
		logger: logger.WithService("car"),
	}
}

func (s *carService) Create(ctx context.Context, actor domain.Actor, car *domain.Car) error {
	if !actor.IsOperator() {
		return fmt.Errorf("creating cars requires an operator: %w", domain.ErrForbidden)
	}
	if car.DailyPriceCents <= 0 {
		return fmt.Errorf("daily price must be positive: %w", domain.ErrValidation)
	}
	if car.MileageKm < 0 {
		return fmt.Errorf("mileage cannot be negative: %w", domain.ErrValidation)
	}
	if car.Status == "" {
		car.Status = domain.CarStatusAvailable
	}
	if err := s.store.Cars().Create(ctx, car); err != nil {
		return err
	}
	s.logger.Info("car created", "car_id", car.ID, "license_plate", car.LicensePlate)
	return nil
}

func (s *carService) Get(ctx context.Context, id int32) (*domain.Car, error) {
	return s.store.Cars().GetByID(ctx, id)
}

func (s *carService) Update(ctx context.Context, actor domain.Actor, car *domain.Car) error {
	if !actor.IsOperator() {
		return fmt.Errorf("updating cars requires an operator: %w", domain.ErrForbidden)
	}
	if car.DailyPriceCents <= 0 {
		return fmt.Errorf("daily price must be positive: %w", domain.ErrValidation)
	}
	if _, err := s.store.Cars().GetByID(ctx, car.ID); err != nil {
		return err
	}
	return s.store.Cars().Update(ctx, car)
}

func (s *carService) List(ctx context.Context, f repository.CarFilter) ([]domain.Car, int32, error) {
	return s.store.Cars().List(ctx, f)
}

func (s *carService) SearchAvailable(ctx context.Context, f repository.CarFilter, pickupDate, returnDate time.Time) ([]domain.Car, error) {
	if !returnDate.After(pickupDate) {
		return nil, fmt.Errorf("return date must be after pickup date: %w", domain.ErrValidation)
	}
	f.Status = domain.CarStatusAvailable
	f.ActiveOnly = true
	cars, _, err := s.store.Cars().List(ctx, f)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Car, 0, len(cars))
	for _, car := range cars {
		blocked, err := s.store.Reservations().HasBlockingOverlap(ctx, car.ID, pickupDate, returnDate, 0)
		if err != nil {
			return nil, err
		}
		if !blocked {
			available = append(available, car)
		}
	}
	return available, nil
}
