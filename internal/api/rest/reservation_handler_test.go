package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

type mockReservationSvc struct{ mock.Mock }

func (m *mockReservationSvc) Create(ctx context.Context, actor domain.Actor, in service.CreateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationSvc) Get(ctx context.Context, actor domain.Actor, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationSvc) List(ctx context.Context, actor domain.Actor, f repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, actor, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}

func (m *mockReservationSvc) Transition(ctx context.Context, actor domain.Actor, id int32, in service.TransitionInput) (*domain.Reservation, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationSvc) PendingCount(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockReservationSvc) IsCarAvailable(ctx context.Context, carID int32, pickupDate, returnDate time.Time) (bool, error) {
	args := m.Called(ctx, carID, pickupDate, returnDate)
	return args.Bool(0), args.Error(1)
}

type mockContractSvc struct{ mock.Mock }

func (m *mockContractSvc) Generate(ctx context.Context, actor domain.Actor, reservationID int32) (*domain.Contract, error) {
	args := m.Called(ctx, actor, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *mockContractSvc) GetByReservation(ctx context.Context, reservationID int32) (*domain.Contract, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func newTestServer(reservations service.ReservationService) (*Server, string) {
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	srv := NewServer(reservations, nil, nil, nil, nil, nil, nil, tokens)
	token, _ := tokens.Generate(domain.Actor{Kind: domain.ActorKindAdmin, ID: 1})
	return srv, token
}

func TestTransitionEndpointStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"conflict", fmt.Errorf("overlap: %w", domain.ErrConflict), http.StatusConflict},
		{"invalid transition", fmt.Errorf("PENDING -> COMPLETED: %w", domain.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("reservation 10: %w", domain.ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("nope: %w", domain.ErrForbidden), http.StatusForbidden},
		{"validation", fmt.Errorf("bad odometer: %w", domain.ErrValidation), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockReservationSvc{}
			srv, token := newTestServer(svc)
			svc.On("Transition", mock.Anything, mock.Anything, int32(10), mock.Anything).Return(nil, tc.err)

			req := httptest.NewRequest(http.MethodPut, "/api/reservations/10/status",
				strings.NewReader(`{"target_status":"APPROVED"}`))
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestTransitionEndpointSuccess(t *testing.T) {
	svc := &mockReservationSvc{}
	srv, token := newTestServer(svc)

	res := &domain.Reservation{ID: 10, Status: domain.ReservationStatusApproved}
	svc.On("Transition", mock.Anything,
		domain.Actor{Kind: domain.ActorKindAdmin, ID: 1}, int32(10),
		service.TransitionInput{Target: domain.ReservationStatusApproved, AdminNotes: "ok"}).
		Return(res, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/reservations/10/status",
		strings.NewReader(`{"target_status":"APPROVED","admin_notes":"ok"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"APPROVED"`)
	svc.AssertExpectations(t)
}

func TestTransitionEndpointRejectsUnknownStatus(t *testing.T) {
	svc := &mockReservationSvc{}
	srv, token := newTestServer(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/reservations/10/status",
		strings.NewReader(`{"target_status":"TELEPORTED"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetContractEnforcesOwnership(t *testing.T) {
	resSvc := &mockReservationSvc{}
	contractSvc := &mockContractSvc{}
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	srv := NewServer(resSvc, nil, nil, nil, nil, contractSvc, nil, tokens)
	owner := domain.Actor{Kind: domain.ActorKindClient, ID: 42}
	stranger := domain.Actor{Kind: domain.ActorKindClient, ID: 99}

	t.Run("owner", func(t *testing.T) {
		resSvc.On("Get", mock.Anything, owner, int32(10)).
			Return(&domain.Reservation{ID: 10, ClientID: 42, Status: domain.ReservationStatusApproved}, nil)
		contractSvc.On("GetByReservation", mock.Anything, int32(10)).
			Return(&domain.Contract{ReservationID: 10, ContractNumber: "CR-AB12CD34"}, nil)

		token, _ := tokens.Generate(owner)
		req := httptest.NewRequest(http.MethodGet, "/api/reservations/10/contract", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "CR-AB12CD34")
	})

	t.Run("another client", func(t *testing.T) {
		resSvc.On("Get", mock.Anything, stranger, int32(10)).
			Return(nil, fmt.Errorf("reservation 10 belongs to another client: %w", domain.ErrForbidden))

		token, _ := tokens.Generate(stranger)
		req := httptest.NewRequest(http.MethodGet, "/api/reservations/10/contract", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		contractSvc.AssertNumberOfCalls(t, "GetByReservation", 1)
	})
}

func TestTransitionEndpointRequiresToken(t *testing.T) {
	svc := &mockReservationSvc{}
	srv, _ := newTestServer(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/reservations/10/status",
		strings.NewReader(`{"target_status":"APPROVED"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
