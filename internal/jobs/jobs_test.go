package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type stubReservationRepo struct {
	repository.ReservationRepository
	queriedDay time.Time
	upcoming   []domain.Reservation
}

func (s *stubReservationRepo) ListApprovedPickingUpOn(_ context.Context, day time.Time) ([]domain.Reservation, error) {
	s.queriedDay = day
	return s.upcoming, nil
}

type stubCarRepo struct {
	repository.CarRepository
	due []domain.Car
}

func (s *stubCarRepo) ListMaintenanceDue(_ context.Context) ([]domain.Car, error) {
	return s.due, nil
}

type stubStore struct {
	repository.Store
	reservations *stubReservationRepo
	cars         *stubCarRepo
}

func (s *stubStore) Reservations() repository.ReservationRepository { return s.reservations }
func (s *stubStore) Cars() repository.CarRepository                 { return s.cars }

type captureNotifier struct {
	notes         []domain.Notification
	operatorNotes []domain.NotificationType
}

func (c *captureNotifier) Notify(_ context.Context, note *domain.Notification) {
	c.notes = append(c.notes, *note)
}

func (c *captureNotifier) NotifyOperators(_ context.Context, noteType domain.NotificationType, _, _ string, _ map[string]string, _ string) {
	c.operatorNotes = append(c.operatorNotes, noteType)
}

func (c *captureNotifier) List(_ context.Context, _ domain.Actor, _, _ int32) ([]domain.Notification, int32, error) {
	return nil, 0, nil
}

func (c *captureNotifier) MarkAsRead(_ context.Context, _ int32, _ domain.Actor) error { return nil }

func TestPickupRemindersTargetNextDay(t *testing.T) {
	repo := &stubReservationRepo{upcoming: []domain.Reservation{
		{ID: 10, ClientID: 42, PickupLocation: "Airport"},
	}}
	notifier := &captureNotifier{}
	j := New(&stubStore{reservations: repo}, notifier)

	j.PickupReminders()

	wantDay := time.Now().UTC().AddDate(0, 0, 1)
	assert.Equal(t, wantDay.Format("2006-01-02"), repo.queriedDay.Format("2006-01-02"))
	if assert.Len(t, notifier.notes, 1) {
		note := notifier.notes[0]
		assert.Equal(t, domain.NotificationPickupReminder, note.Type)
		assert.Equal(t, domain.Actor{Kind: domain.ActorKindClient, ID: 42}, note.Recipient)
		assert.Contains(t, note.Message, "tomorrow")
	}
}

func TestMaintenanceDueRemindersNotifyOperators(t *testing.T) {
	cars := &stubCarRepo{due: []domain.Car{
		{ID: 7, Brand: "Toyota", Model: "Corolla", LicensePlate: "CA1234BH", MileageKm: 52000, LastMaintenanceKm: 40000},
	}}
	notifier := &captureNotifier{}
	j := New(&stubStore{cars: cars}, notifier)

	j.MaintenanceDueReminders()

	assert.Equal(t, []domain.NotificationType{domain.NotificationMaintenanceDue}, notifier.operatorNotes)
}
