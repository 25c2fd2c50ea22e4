package repository

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type CarFilter struct {
	Status        domain.CarStatus
	ActiveOnly    bool
	Query         string
	MaxPriceCents int32
	Page          int32
	PageSize      int32
}

type ReservationFilter struct {
	ClientID int32
	CarID    int32
	Status   domain.ReservationStatus
	FromDate *time.Time
	ToDate   *time.Time
	Page     int32
	PageSize int32
}

type MaintenanceFilter struct {
	CarID    int32
	Type     domain.MaintenanceType
	FromDate *time.Time
	ToDate   *time.Time
	Page     int32
	PageSize int32
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	SetStatus(ctx context.Context, id int32, status domain.CarStatus) error
	// AdvanceMileage raises the odometer to km; it is a no-op when km is
	// not greater than the current reading. Mileage never decreases.
	AdvanceMileage(ctx context.Context, id int32, km int32) error
	RecordMaintenance(ctx context.Context, id int32, km int32, date time.Time) error
	List(ctx context.Context, f CarFilter) ([]domain.Car, int32, error)
	ListMaintenanceDue(ctx context.Context) ([]domain.Car, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	// HasBlockingOverlap is the single overlap predicate shared by every
	// availability check: it reports whether any APPROVED or ACTIVE
	// reservation for the car intersects [pickup, return]. excludeID skips
	// one reservation when a transition re-checks against itself; pass 0
	// otherwise.
	HasBlockingOverlap(ctx context.Context, carID int32, pickupDate, returnDate time.Time, excludeID int32) (bool, error)
	List(ctx context.Context, f ReservationFilter) ([]domain.Reservation, int32, error)
	CountByStatus(ctx context.Context, status domain.ReservationStatus) (int32, error)
	// ListApprovedPickingUpOn returns APPROVED reservations whose pickup
	// date falls on the given calendar day.
	ListApprovedPickingUpOn(ctx context.Context, day time.Time) ([]domain.Reservation, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	UpdateScore(ctx context.Context, clientID, score int32) error
	IncrementTotalReservations(ctx context.Context, clientID int32) error
}

type StaffRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	// ListActive returns every active admin and manager, the recipients of
	// operator-facing notifications.
	ListActive(ctx context.Context) ([]domain.Staff, error)
}

type ScoreRepository interface {
	Create(ctx context.Context, entry *domain.ScoreEntry) error
	// SumByClient totals every ledger delta for the client. The cached
	// client score is always recomputed from this, never incremented.
	SumByClient(ctx context.Context, clientID int32) (int32, error)
	ListByClient(ctx context.Context, clientID int32, page, pageSize int32) ([]domain.ScoreEntry, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByRecipient(ctx context.Context, recipient domain.Actor, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int32, recipient domain.Actor) error
}

type SettingsRepository interface {
	GetRentalPolicy(ctx context.Context) (*domain.RentalPolicy, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, rec *domain.MaintenanceRecord) error
	GetByID(ctx context.Context, id int32) (*domain.MaintenanceRecord, error)
	List(ctx context.Context, f MaintenanceFilter) ([]domain.MaintenanceRecord, int32, error)
}

type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByReservation(ctx context.Context, reservationID int32) (*domain.Contract, error)
}

// Store bundles every repository plus the per-car atomic scope the
// lifecycle relies on.
type Store interface {
	Cars() CarRepository
	Reservations() ReservationRepository
	Clients() ClientRepository
	Staff() StaffRepository
	Scores() ScoreRepository
	Notifications() NotificationRepository
	Settings() SettingsRepository
	Maintenance() MaintenanceRepository
	Contracts() ContractRepository

	// AtomicCar runs fn inside a single transaction holding the car's row
	// lock. Every repository obtained from the Store passed to fn operates
	// on that transaction, so an availability check and the write it guards
	// are linearizable against every other AtomicCar call for the same car.
	// fn returning an error rolls the whole transaction back.
	AtomicCar(ctx context.Context, carID int32, fn func(Store) error) error
}
