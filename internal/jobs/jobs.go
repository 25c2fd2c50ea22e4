package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

const jobTimeout = 5 * time.Minute

// Jobs bundles the scheduled background tasks.
type Jobs struct {
	store    repository.Store
	notifier service.NotificationService
	logger   *slog.Logger
}

func New(store repository.Store, notifier service.NotificationService) *Jobs {
	return &Jobs{
		store:    store,
		notifier: notifier,
		logger:   logger.WithService("jobs"),
	}
}

// run executes a job with a timeout and panic recovery so a bad run never
// takes down the scheduler.
func (j *Jobs) run(name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("job panicked", "job", name, "panic", r)
		}
	}()

	start := time.Now()
	if err := fn(ctx); err != nil {
		j.logger.Error("job failed", "job", name, "error", err)
		return
	}
	j.logger.Info("job completed", "job", name, "duration", time.Since(start))
}

func (j *Jobs) MaintenanceDueReminders() {
	j.run("maintenance_due_reminders", j.maintenanceDueReminders)
}

func (j *Jobs) maintenanceDueReminders(ctx context.Context) error {
	cars, err := j.store.Cars().ListMaintenanceDue(ctx)
	if err != nil {
		return err
	}
	for _, car := range cars {
		overdue := car.MileageKm - car.LastMaintenanceKm
		j.notifier.NotifyOperators(ctx, domain.NotificationMaintenanceDue,
			"Maintenance due",
			fmt.Sprintf("%s %s (%s) has driven %d km since its last service.",
				car.Brand, car.Model, car.LicensePlate, overdue),
			map[string]string{"car_id": fmt.Sprint(car.ID)},
			fmt.Sprintf("/admin/cars/%d", car.ID))
	}
	j.logger.Info("maintenance reminders sent", "cars_due", len(cars))
	return nil
}

func (j *Jobs) PickupReminders() {
	j.run("pickup_reminders", j.pickupReminders)
}

func (j *Jobs) pickupReminders(ctx context.Context) error {
	// Day-ahead notice: remind clients the evening before their pickup.
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	reservations, err := j.store.Reservations().ListApprovedPickingUpOn(ctx, tomorrow)
	if err != nil {
		return err
	}
	for _, res := range reservations {
		j.notifier.Notify(ctx, &domain.Notification{
			Recipient: domain.Actor{Kind: domain.ActorKindClient, ID: res.ClientID},
			Type:      domain.NotificationPickupReminder,
			Title:     "Pickup tomorrow",
			Message:   fmt.Sprintf("Reservation #%d is scheduled for pickup tomorrow at %s.", res.ID, res.PickupLocation),
			Data:      map[string]string{"reservation_id": fmt.Sprint(res.ID)},
			Link:      fmt.Sprintf("/reservations/%d", res.ID),
		})
	}
	j.logger.Info("pickup reminders sent", "count", len(reservations))
	return nil
}
