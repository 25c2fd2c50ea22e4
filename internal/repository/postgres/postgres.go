package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so every repository can
// run against the shared pool or a transaction opened by AtomicCar.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil when the store is bound to a transaction
	q  queryer

	cars          repository.CarRepository
	reservations  repository.ReservationRepository
	clients       repository.ClientRepository
	staff         repository.StaffRepository
	scores        repository.ScoreRepository
	notifications repository.NotificationRepository
	settings      repository.SettingsRepository
	maintenance   repository.MaintenanceRepository
	contracts     repository.ContractRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q queryer) *Store {
	return &Store{
		db:            db,
		q:             q,
		cars:          &carRepository{q: q},
		reservations:  &reservationRepository{q: q},
		clients:       &clientRepository{q: q},
		staff:         &staffRepository{q: q},
		scores:        &scoreRepository{q: q},
		notifications: &notificationRepository{q: q},
		settings:      &settingsRepository{q: q},
		maintenance:   &maintenanceRepository{q: q},
		contracts:     &contractRepository{q: q},
	}
}

func (s *Store) Cars() repository.CarRepository                   { return s.cars }
func (s *Store) Reservations() repository.ReservationRepository   { return s.reservations }
func (s *Store) Clients() repository.ClientRepository             { return s.clients }
func (s *Store) Staff() repository.StaffRepository                { return s.staff }
func (s *Store) Scores() repository.ScoreRepository               { return s.scores }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) Settings() repository.SettingsRepository          { return s.settings }
func (s *Store) Maintenance() repository.MaintenanceRepository    { return s.maintenance }
func (s *Store) Contracts() repository.ContractRepository         { return s.contracts }

// AtomicCar opens a transaction, locks the car row with SELECT ... FOR
// UPDATE and runs fn against transaction-bound repositories. Concurrent
// AtomicCar calls for the same car serialize on the row lock, which makes
// "check availability then write" safe against interleaved creates and
// approvals. Calls nest: a store already bound to a transaction reuses it.
func (s *Store) AtomicCar(ctx context.Context, carID int32, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	var id int32
	if err := tx.QueryRowContext(ctx, `SELECT id FROM cars WHERE id = $1 FOR UPDATE`, carID).Scan(&id); err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("car %d: %w", carID, domain.ErrNotFound)
		}
		return fmt.Errorf("lock car %d: %w", carID, err)
	}

	if err := fn(newStore(nil, tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
