package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type contractService struct {
	store    repository.Store
	notifier NotificationService
	logger   *slog.Logger
}

func NewContractService(store repository.Store, notifier NotificationService) ContractService {
	return &contractService{
		store:    store,
		notifier: notifier,
		logger:   logger.WithService("contract"),
	}
}

func (s *contractService) Generate(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Contract, error) {
	if !actor.IsOperator() {
		return nil, fmt.Errorf("generating contracts requires an operator: %w", domain.ErrForbidden)
	}

	existing, err := s.store.Contracts().GetByReservation(ctx, reservationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	res, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case domain.ReservationStatusApproved, domain.ReservationStatusActive, domain.ReservationStatusCompleted:
	default:
		return nil, fmt.Errorf("contract requires an approved reservation, got %s: %w", res.Status, domain.ErrInvalidTransition)
	}

	contract := &domain.Contract{
		ReservationID:  reservationID,
		ContractNumber: newContractNumber(),
		GeneratedBy:    actor,
	}
	if err := s.store.Contracts().Create(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("contract generated", "reservation_id", reservationID, "contract_number", contract.ContractNumber)
	s.notifier.Notify(ctx, &domain.Notification{
		Recipient: domain.Actor{Kind: domain.ActorKindClient, ID: res.ClientID},
		Type:      domain.NotificationContractReady,
		Title:     "Rental contract ready",
		Message:   fmt.Sprintf("Contract %s for reservation #%d is ready.", contract.ContractNumber, reservationID),
		Data:      map[string]string{"contract_number": contract.ContractNumber},
		Link:      fmt.Sprintf("/reservations/%d/contract", reservationID),
	})
	return contract, nil
}

func (s *contractService) GetByReservation(ctx context.Context, reservationID int32) (*domain.Contract, error) {
	return s.store.Contracts().GetByReservation(ctx, reservationID)
}

func newContractNumber() string {
	return "CR-" + strings.ToUpper(uuid.NewString()[:8])
}
