package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type reservationService struct {
	store    repository.Store
	notifier NotificationService
	email    EmailService
	logger   *slog.Logger
}

func NewReservationService(store repository.Store, notifier NotificationService, email EmailService) ReservationService {
	return &reservationService{
		store:    store,
		notifier: notifier,
		email:    email,
		logger:   logger.WithService("reservation"),
	}
}

func (s *reservationService) Create(ctx context.Context, actor domain.Actor, in CreateReservationInput) (*domain.Reservation, error) {
	if actor.Kind == domain.ActorKindClient && actor.ID != in.ClientID {
		return nil, fmt.Errorf("client %d cannot book for client %d: %w", actor.ID, in.ClientID, domain.ErrForbidden)
	}

	client, err := s.store.Clients().GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client.IsBlocked {
		return nil, fmt.Errorf("client %d is blocked: %w", client.ID, domain.ErrForbidden)
	}
	if !client.License.IsValid(in.ReturnDate) {
		return nil, fmt.Errorf("driving license expires before return date: %w", domain.ErrValidation)
	}

	days, err := utils.RentalDays(in.PickupDate, in.ReturnDate)
	if err != nil {
		return nil, err
	}
	policy, err := s.store.Settings().GetRentalPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkPolicy(policy, in.PickupDate, days, time.Now()); err != nil {
		return nil, err
	}

	var res *domain.Reservation
	err = s.store.AtomicCar(ctx, in.CarID, func(tx repository.Store) error {
		car, err := tx.Cars().GetByID(ctx, in.CarID)
		if err != nil {
			return err
		}
		if !car.IsActive || car.Status != domain.CarStatusAvailable {
			return fmt.Errorf("car %d is not available for booking: %w", car.ID, domain.ErrConflict)
		}
		blocked, err := tx.Reservations().HasBlockingOverlap(ctx, car.ID, in.PickupDate, in.ReturnDate, 0)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("car %d already booked in the requested interval: %w", car.ID, domain.ErrConflict)
		}

		total := utils.BasePriceCents(days, car.DailyPriceCents)
		res = &domain.Reservation{
			ClientID:        in.ClientID,
			CarID:           in.CarID,
			PickupDate:      in.PickupDate,
			ReturnDate:      in.ReturnDate,
			TotalDays:       days,
			DailyRateCents:  car.DailyPriceCents,
			TotalPriceCents: total,
			FinalPriceCents: total,
			Status:          domain.ReservationStatusPending,
			Notes:           in.Notes,
			PickupLocation:  in.PickupLocation,
			ReturnLocation:  in.ReturnLocation,
		}
		return tx.Reservations().Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation created", "reservation_id", res.ID, "client_id", res.ClientID, "car_id", res.CarID)
	s.notifier.NotifyOperators(ctx, domain.NotificationReservationNew,
		"New reservation request",
		fmt.Sprintf("%s requested a reservation from %s to %s",
			client.Name, res.PickupDate.Format("2006-01-02"), res.ReturnDate.Format("2006-01-02")),
		map[string]string{"reservation_id": fmt.Sprint(res.ID)},
		fmt.Sprintf("/admin/reservations/%d", res.ID))
	return res, nil
}

func checkPolicy(policy *domain.RentalPolicy, pickupDate time.Time, days int32, now time.Time) error {
	if days < policy.MinimumRentalDays {
		return fmt.Errorf("rental must be at least %d day(s): %w", policy.MinimumRentalDays, domain.ErrValidation)
	}
	if days > policy.MaximumRentalDays {
		return fmt.Errorf("rental cannot exceed %d day(s): %w", policy.MaximumRentalDays, domain.ErrValidation)
	}
	today := now.Truncate(24 * time.Hour)
	if pickupDate.Before(today) {
		return fmt.Errorf("pickup date is in the past: %w", domain.ErrValidation)
	}
	latest := today.AddDate(0, 0, int(policy.AdvanceBookingDays))
	if pickupDate.After(latest) {
		return fmt.Errorf("pickup date exceeds the %d-day booking window: %w", policy.AdvanceBookingDays, domain.ErrValidation)
	}
	return nil
}

func (s *reservationService) Get(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error) {
	res, err := s.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Kind == domain.ActorKindClient && actor.ID != res.ClientID {
		return nil, fmt.Errorf("reservation %d belongs to another client: %w", id, domain.ErrForbidden)
	}
	return res, nil
}

func (s *reservationService) List(ctx context.Context, actor domain.Actor, f repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	// Clients only ever see their own reservations.
	if actor.Kind == domain.ActorKindClient {
		f.ClientID = actor.ID
	}
	return s.store.Reservations().List(ctx, f)
}

func (s *reservationService) Transition(ctx context.Context, actor domain.Actor, id int32, in TransitionInput) (*domain.Reservation, error) {
	if in.Target != domain.ReservationStatusCancelled && !actor.IsOperator() {
		return nil, fmt.Errorf("transition to %s requires an operator: %w", in.Target, domain.ErrForbidden)
	}

	// The car id is needed to take the row lock; the reservation itself is
	// re-read under the lock so a stale copy is never transitioned.
	peek, err := s.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var res *domain.Reservation
	err = s.store.AtomicCar(ctx, peek.CarID, func(tx repository.Store) error {
		res, err = tx.Reservations().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !res.Status.CanTransitionTo(in.Target) {
			return fmt.Errorf("%s -> %s: %w", res.Status, in.Target, domain.ErrInvalidTransition)
		}

		switch in.Target {
		case domain.ReservationStatusApproved:
			if err := s.applyApprove(ctx, tx, res, actor, in); err != nil {
				return err
			}
		case domain.ReservationStatusRejected:
			if in.RejectionReason == "" {
				return fmt.Errorf("rejection requires a reason: %w", domain.ErrValidation)
			}
			res.RejectionReason = in.RejectionReason
			res.AdminNotes = in.AdminNotes
		case domain.ReservationStatusActive:
			if err := s.applyActivate(ctx, tx, res, in); err != nil {
				return err
			}
		case domain.ReservationStatusCompleted:
			if err := s.applyComplete(ctx, tx, res, in); err != nil {
				return err
			}
		case domain.ReservationStatusCancelled:
			if actor.Kind != domain.ActorKindClient || actor.ID != res.ClientID {
				return fmt.Errorf("only the owning client may cancel: %w", domain.ErrForbidden)
			}
			if in.CancellationReason == "" {
				return fmt.Errorf("cancellation requires a reason: %w", domain.ErrValidation)
			}
			now := time.Now()
			res.CancellationReason = in.CancellationReason
			res.CancelledAt = &now
		}

		res.Status = in.Target
		return tx.Reservations().Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation transitioned",
		"reservation_id", res.ID, "status", res.Status, "actor_kind", actor.Kind, "actor_id", actor.ID)
	s.dispatchTransitionEffects(ctx, res)
	return res, nil
}

func (s *reservationService) applyApprove(ctx context.Context, tx repository.Store, res *domain.Reservation, actor domain.Actor, in TransitionInput) error {
	// A pending reservation may have been overtaken by a booking approved
	// in the interim, so availability is re-checked under the same lock.
	blocked, err := tx.Reservations().HasBlockingOverlap(ctx, res.CarID, res.PickupDate, res.ReturnDate, res.ID)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("car %d no longer available for reservation %d: %w", res.CarID, res.ID, domain.ErrConflict)
	}
	now := time.Now()
	res.ApprovedBy = &actor
	res.ApprovedAt = &now
	res.AdminNotes = in.AdminNotes
	return nil
}

func (s *reservationService) applyActivate(ctx context.Context, tx repository.Store, res *domain.Reservation, in TransitionInput) error {
	car, err := tx.Cars().GetByID(ctx, res.CarID)
	if err != nil {
		return err
	}
	km := car.MileageKm
	if in.KmAtPickup != nil {
		if *in.KmAtPickup < 0 {
			return fmt.Errorf("pickup odometer cannot be negative: %w", domain.ErrValidation)
		}
		km = *in.KmAtPickup
	}
	res.KmAtPickup = &km
	res.FuelAtPickup = in.FuelAtPickup
	return tx.Cars().SetStatus(ctx, res.CarID, domain.CarStatusRented)
}

func (s *reservationService) applyComplete(ctx context.Context, tx repository.Store, res *domain.Reservation, in TransitionInput) error {
	if in.KmAtReturn == nil {
		return fmt.Errorf("completion requires the return odometer: %w", domain.ErrValidation)
	}
	if res.KmAtPickup != nil && *in.KmAtReturn < *res.KmAtPickup {
		return fmt.Errorf("return odometer below pickup odometer: %w", domain.ErrValidation)
	}
	if in.ExtraChargesCents < 0 {
		return fmt.Errorf("extra charges cannot be negative: %w", domain.ErrValidation)
	}

	now := time.Now()
	res.KmAtReturn = in.KmAtReturn
	res.FuelAtReturn = in.FuelAtReturn
	res.ActualReturnDate = &now
	res.ExtraChargesCents = in.ExtraChargesCents
	res.FinalPriceCents = utils.FinalPriceCents(res.TotalPriceCents, in.ExtraChargesCents)

	if err := tx.Cars().SetStatus(ctx, res.CarID, domain.CarStatusAvailable); err != nil {
		return err
	}
	if err := tx.Cars().AdvanceMileage(ctx, res.CarID, *in.KmAtReturn); err != nil {
		return err
	}
	return tx.Clients().IncrementTotalReservations(ctx, res.ClientID)
}

// dispatchTransitionEffects emits the post-commit notifications and emails
// for a transition. Failures are logged and never surface to the caller.
func (s *reservationService) dispatchTransitionEffects(ctx context.Context, res *domain.Reservation) {
	client, err := s.store.Clients().GetByID(ctx, res.ClientID)
	if err != nil {
		s.logger.Error("failed to load client for transition side effects", "reservation_id", res.ID, "error", err)
		return
	}
	clientActor := domain.Actor{Kind: domain.ActorKindClient, ID: client.ID}
	data := map[string]string{"reservation_id": fmt.Sprint(res.ID)}
	link := fmt.Sprintf("/reservations/%d", res.ID)

	switch res.Status {
	case domain.ReservationStatusApproved:
		s.notifier.Notify(ctx, &domain.Notification{
			Recipient: clientActor,
			Type:      domain.NotificationReservationApproved,
			Title:     "Reservation approved",
			Message:   fmt.Sprintf("Your reservation #%d has been approved.", res.ID),
			Data:      data,
			Link:      link,
		})
		s.sendStatusEmail(ctx, client, res, "Your reservation is approved",
			fmt.Sprintf("<p>Your reservation #%d from %s to %s has been approved.</p>",
				res.ID, res.PickupDate.Format("2006-01-02"), res.ReturnDate.Format("2006-01-02")))
	case domain.ReservationStatusRejected:
		s.notifier.Notify(ctx, &domain.Notification{
			Recipient: clientActor,
			Type:      domain.NotificationReservationRejected,
			Title:     "Reservation rejected",
			Message:   fmt.Sprintf("Your reservation #%d was rejected: %s", res.ID, res.RejectionReason),
			Data:      data,
			Link:      link,
		})
		s.sendStatusEmail(ctx, client, res, "Your reservation was rejected",
			fmt.Sprintf("<p>Your reservation #%d was rejected.</p><p>Reason: %s</p>", res.ID, res.RejectionReason))
	case domain.ReservationStatusCompleted:
		s.notifier.Notify(ctx, &domain.Notification{
			Recipient: clientActor,
			Type:      domain.NotificationReservationCompleted,
			Title:     "Reservation completed",
			Message:   fmt.Sprintf("Reservation #%d is settled at %d.%02d.", res.ID, res.FinalPriceCents/100, res.FinalPriceCents%100),
			Data:      data,
			Link:      link,
		})
	case domain.ReservationStatusCancelled:
		s.notifier.NotifyOperators(ctx, domain.NotificationReservationCancelled,
			"Reservation cancelled",
			fmt.Sprintf("%s cancelled reservation #%d: %s", client.Name, res.ID, res.CancellationReason),
			data, fmt.Sprintf("/admin/reservations/%d", res.ID))
	}
}

func (s *reservationService) sendStatusEmail(ctx context.Context, client *domain.Client, res *domain.Reservation, subject, body string) {
	if err := s.email.Send(ctx, client.Email, client.Name, subject, body); err != nil {
		s.logger.Error("failed to send status email", "reservation_id", res.ID, "to", client.Email, "error", err)
	}
}

func (s *reservationService) PendingCount(ctx context.Context) (int32, error) {
	return s.store.Reservations().CountByStatus(ctx, domain.ReservationStatusPending)
}

func (s *reservationService) IsCarAvailable(ctx context.Context, carID int32, pickupDate, returnDate time.Time) (bool, error) {
	if !returnDate.After(pickupDate) {
		return false, fmt.Errorf("return date must be after pickup date: %w", domain.ErrValidation)
	}
	car, err := s.store.Cars().GetByID(ctx, carID)
	if err != nil {
		return false, err
	}
	if !car.IsActive || car.Status != domain.CarStatusAvailable {
		return false, nil
	}
	blocked, err := s.store.Reservations().HasBlockingOverlap(ctx, carID, pickupDate, returnDate, 0)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}
