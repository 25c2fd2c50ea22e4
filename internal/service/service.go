package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type CreateReservationInput struct {
	ClientID       int32
	CarID          int32
	PickupDate     time.Time
	ReturnDate     time.Time
	Notes          string
	PickupLocation string
	ReturnLocation string
}

// TransitionInput carries the status-specific fields of a transition
// request. Fields irrelevant to the target status are ignored.
type TransitionInput struct {
	Target             domain.ReservationStatus
	AdminNotes         string
	RejectionReason    string
	CancellationReason string
	KmAtPickup         *int32
	FuelAtPickup       *domain.FuelLevel
	KmAtReturn         *int32
	FuelAtReturn       *domain.FuelLevel
	ExtraChargesCents  int32
}

type ReservationService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error)
	List(ctx context.Context, actor domain.Actor, f repository.ReservationFilter) ([]domain.Reservation, int32, error)
	// Transition applies one state-machine edge. The availability re-check,
	// the reservation write and any car status write commit atomically.
	Transition(ctx context.Context, actor domain.Actor, id int32, in TransitionInput) (*domain.Reservation, error)
	PendingCount(ctx context.Context) (int32, error)
	IsCarAvailable(ctx context.Context, carID int32, pickupDate, returnDate time.Time) (bool, error)
}

type CarService interface {
	Create(ctx context.Context, actor domain.Actor, car *domain.Car) error
	Get(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, actor domain.Actor, car *domain.Car) error
	List(ctx context.Context, f repository.CarFilter) ([]domain.Car, int32, error)
	// SearchAvailable lists cars matching the filter that have no blocking
	// reservation over [pickupDate, returnDate].
	SearchAvailable(ctx context.Context, f repository.CarFilter, pickupDate, returnDate time.Time) ([]domain.Car, error)
}

type AppendScoreInput struct {
	ClientID      int32
	ReservationID int32
	Delta         int32
	Reason        string
	Comment       string
}

type ScoreService interface {
	Append(ctx context.Context, actor domain.Actor, in AppendScoreInput) (*domain.ScoreEntry, error)
	CurrentScore(ctx context.Context, clientID int32) (int32, error)
	History(ctx context.Context, clientID, page, pageSize int32) ([]domain.ScoreEntry, int32, error)
}

// NotificationService persists notifications, pushes them to the live event
// channel and never fails the caller. Delivery problems are logged.
type NotificationService interface {
	Notify(ctx context.Context, note *domain.Notification)
	NotifyOperators(ctx context.Context, noteType domain.NotificationType, title, message string, data map[string]string, link string)
	List(ctx context.Context, recipient domain.Actor, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int32, recipient domain.Actor) error
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, htmlBody string) error
}

type ContractService interface {
	// Generate creates the rental contract for an approved or later
	// reservation. Generating twice returns the existing contract.
	Generate(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Contract, error)
	GetByReservation(ctx context.Context, reservationID int32) (*domain.Contract, error)
}

type RecordMaintenanceInput struct {
	CarID           int32
	Date            time.Time
	Type            domain.MaintenanceType
	Description     string
	CostCents       int32
	KmAtMaintenance int32
	PerformedBy     string
	InvoiceNumber   string
	Notes           string
}

type MaintenanceService interface {
	Record(ctx context.Context, actor domain.Actor, in RecordMaintenanceInput) (*domain.MaintenanceRecord, error)
	Get(ctx context.Context, id int32) (*domain.MaintenanceRecord, error)
	List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceRecord, int32, error)
	ListDueCars(ctx context.Context) ([]domain.Car, error)
}

type AuthService interface {
	ClientLogin(ctx context.Context, email, password string) (string, *domain.Client, error)
	StaffLogin(ctx context.Context, email, password string) (string, *domain.Staff, error)
	RegisterClient(ctx context.Context, client *domain.Client, password string) error
}
