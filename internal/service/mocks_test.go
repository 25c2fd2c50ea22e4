package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type mockCarRepo struct{ mock.Mock }

func (m *mockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *mockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *mockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *mockCarRepo) SetStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockCarRepo) AdvanceMileage(ctx context.Context, id int32, km int32) error {
	return m.Called(ctx, id, km).Error(0)
}

func (m *mockCarRepo) RecordMaintenance(ctx context.Context, id int32, km int32, date time.Time) error {
	return m.Called(ctx, id, km, date).Error(0)
}

func (m *mockCarRepo) List(ctx context.Context, f repository.CarFilter) ([]domain.Car, int32, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}

func (m *mockCarRepo) ListMaintenanceDue(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) Update(ctx context.Context, res *domain.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

func (m *mockReservationRepo) HasBlockingOverlap(ctx context.Context, carID int32, pickupDate, returnDate time.Time, excludeID int32) (bool, error) {
	args := m.Called(ctx, carID, pickupDate, returnDate, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}

func (m *mockReservationRepo) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int32, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockReservationRepo) ListApprovedPickingUpOn(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientRepo) UpdateScore(ctx context.Context, clientID, score int32) error {
	return m.Called(ctx, clientID, score).Error(0)
}

func (m *mockClientRepo) IncrementTotalReservations(ctx context.Context, clientID int32) error {
	return m.Called(ctx, clientID).Error(0)
}

type mockStaffRepo struct{ mock.Mock }

func (m *mockStaffRepo) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) ListActive(ctx context.Context) ([]domain.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

type mockScoreRepo struct{ mock.Mock }

func (m *mockScoreRepo) Create(ctx context.Context, entry *domain.ScoreEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockScoreRepo) SumByClient(ctx context.Context, clientID int32) (int32, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockScoreRepo) ListByClient(ctx context.Context, clientID int32, page, pageSize int32) ([]domain.ScoreEntry, int32, error) {
	args := m.Called(ctx, clientID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ScoreEntry), args.Get(1).(int32), args.Error(2)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipient domain.Actor, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, recipient, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id int32, recipient domain.Actor) error {
	return m.Called(ctx, id, recipient).Error(0)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) GetRentalPolicy(ctx context.Context) (*domain.RentalPolicy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalPolicy), args.Error(1)
}

type mockMaintenanceRepo struct{ mock.Mock }

func (m *mockMaintenanceRepo) Create(ctx context.Context, rec *domain.MaintenanceRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockMaintenanceRepo) GetByID(ctx context.Context, id int32) (*domain.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceRecord), args.Error(1)
}

func (m *mockMaintenanceRepo) List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceRecord, int32, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.MaintenanceRecord), args.Get(1).(int32), args.Error(2)
}

type mockContractRepo struct{ mock.Mock }

func (m *mockContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContractRepo) GetByReservation(ctx context.Context, reservationID int32) (*domain.Contract, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

// mockStore hands the same mocked repositories to transactional and
// non-transactional callers; AtomicCar simply runs fn against itself.
type mockStore struct {
	cars          *mockCarRepo
	reservations  *mockReservationRepo
	clients       *mockClientRepo
	staff         *mockStaffRepo
	scores        *mockScoreRepo
	notifications *mockNotificationRepo
	settings      *mockSettingsRepo
	maintenance   *mockMaintenanceRepo
	contracts     *mockContractRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		cars:          &mockCarRepo{},
		reservations:  &mockReservationRepo{},
		clients:       &mockClientRepo{},
		staff:         &mockStaffRepo{},
		scores:        &mockScoreRepo{},
		notifications: &mockNotificationRepo{},
		settings:      &mockSettingsRepo{},
		maintenance:   &mockMaintenanceRepo{},
		contracts:     &mockContractRepo{},
	}
}

func (s *mockStore) Cars() repository.CarRepository                   { return s.cars }
func (s *mockStore) Reservations() repository.ReservationRepository   { return s.reservations }
func (s *mockStore) Clients() repository.ClientRepository             { return s.clients }
func (s *mockStore) Staff() repository.StaffRepository                { return s.staff }
func (s *mockStore) Scores() repository.ScoreRepository               { return s.scores }
func (s *mockStore) Notifications() repository.NotificationRepository { return s.notifications }
func (s *mockStore) Settings() repository.SettingsRepository          { return s.settings }
func (s *mockStore) Maintenance() repository.MaintenanceRepository    { return s.maintenance }
func (s *mockStore) Contracts() repository.ContractRepository         { return s.contracts }

func (s *mockStore) AtomicCar(ctx context.Context, carID int32, fn func(repository.Store) error) error {
	return fn(s)
}

type fakeNotifier struct {
	notes         []domain.Notification
	operatorNotes []domain.NotificationType
}

func (f *fakeNotifier) Notify(_ context.Context, note *domain.Notification) {
	f.notes = append(f.notes, *note)
}

func (f *fakeNotifier) NotifyOperators(_ context.Context, noteType domain.NotificationType, _, _ string, _ map[string]string, _ string) {
	f.operatorNotes = append(f.operatorNotes, noteType)
}

func (f *fakeNotifier) List(_ context.Context, _ domain.Actor, _, _ int32) ([]domain.Notification, int32, error) {
	return nil, 0, nil
}

func (f *fakeNotifier) MarkAsRead(_ context.Context, _ int32, _ domain.Actor) error { return nil }

type fakeEmail struct {
	sent []string
}

func (f *fakeEmail) Send(_ context.Context, toEmail, _, subject, _ string) error {
	f.sent = append(f.sent, subject+" -> "+toEmail)
	return nil
}
