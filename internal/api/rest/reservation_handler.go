package rest

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

type createReservationRequest struct {
	ClientID       int32  `json:"client_id"`
	CarID          int32  `json:"car_id" validate:"required"`
	PickupDate     string `json:"pickup_date" validate:"required"`
	ReturnDate     string `json:"return_date" validate:"required"`
	Notes          string `json:"notes"`
	PickupLocation string `json:"pickup_location"`
	ReturnLocation string `json:"return_location"`
}

type transitionRequest struct {
	TargetStatus       string  `json:"target_status" validate:"required,oneof=APPROVED REJECTED ACTIVE COMPLETED CANCELLED"`
	AdminNotes         string  `json:"admin_notes"`
	RejectionReason    string  `json:"rejection_reason"`
	CancellationReason string  `json:"cancellation_reason"`
	KmAtPickup         *int32  `json:"km_at_pickup"`
	FuelAtPickup       *string `json:"fuel_at_pickup" validate:"omitempty,oneof=EMPTY QUARTER HALF THREE_QUARTER FULL"`
	KmAtReturn         *int32  `json:"km_at_return"`
	FuelAtReturn       *string `json:"fuel_at_return" validate:"omitempty,oneof=EMPTY QUARTER HALF THREE_QUARTER FULL"`
	ExtraChargesCents  int32   `json:"extra_charges_cents"`
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req createReservationRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	pickup, err := parseDate(req.PickupDate, "pickup_date")
	if err != nil {
		writeError(w, err)
		return
	}
	ret, err := parseDate(req.ReturnDate, "return_date")
	if err != nil {
		writeError(w, err)
		return
	}

	clientID := req.ClientID
	if actor.Kind == domain.ActorKindClient {
		clientID = actor.ID
	}
	res, err := s.reservations.Create(r.Context(), actor, service.CreateReservationInput{
		ClientID:       clientID,
		CarID:          req.CarID,
		PickupDate:     pickup,
		ReturnDate:     ret,
		Notes:          req.Notes,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	f := repository.ReservationFilter{
		ClientID: queryInt32(r, "client_id", 0),
		CarID:    queryInt32(r, "car_id", 0),
		Status:   domain.ReservationStatus(r.URL.Query().Get("status")),
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 10),
	}
	items, total, err := s.reservations.List(r.Context(), actor, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (s *Server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.reservations.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTransitionReservation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req transitionRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := service.TransitionInput{
		Target:             domain.ReservationStatus(req.TargetStatus),
		AdminNotes:         req.AdminNotes,
		RejectionReason:    req.RejectionReason,
		CancellationReason: req.CancellationReason,
		KmAtPickup:         req.KmAtPickup,
		KmAtReturn:         req.KmAtReturn,
		ExtraChargesCents:  req.ExtraChargesCents,
	}
	if req.FuelAtPickup != nil {
		fuel := domain.FuelLevel(*req.FuelAtPickup)
		in.FuelAtPickup = &fuel
	}
	if req.FuelAtReturn != nil {
		fuel := domain.FuelLevel(*req.FuelAtReturn)
		in.FuelAtReturn = &fuel
	}

	res, err := s.reservations.Transition(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.reservations.PendingCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"pending_count": count})
}

func (s *Server) handleGetContract(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	// Loading the reservation enforces ownership for client callers.
	if _, err := s.reservations.Get(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	contract, err := s.contracts.GetByReservation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (s *Server) handleGenerateContract(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	contract, err := s.contracts.Generate(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}
