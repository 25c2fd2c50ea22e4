package rest

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

type recordMaintenanceRequest struct {
	CarID           int32  `json:"car_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=OIL_CHANGE TIRE_CHANGE BRAKE_SERVICE GENERAL_SERVICE REPAIR INSPECTION OTHER"`
	Description     string `json:"description"`
	CostCents       int32  `json:"cost_cents" validate:"gte=0"`
	KmAtMaintenance int32  `json:"km_at_maintenance" validate:"gte=0"`
	PerformedBy     string `json:"performed_by"`
	InvoiceNumber   string `json:"invoice_number"`
	Notes           string `json:"notes"`
}

func (s *Server) handleRecordMaintenance(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req recordMaintenanceRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	date, err := parseDate(req.Date, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.maintenance.Record(r.Context(), actor, service.RecordMaintenanceInput{
		CarID:           req.CarID,
		Date:            date,
		Type:            domain.MaintenanceType(req.Type),
		Description:     req.Description,
		CostCents:       req.CostCents,
		KmAtMaintenance: req.KmAtMaintenance,
		PerformedBy:     req.PerformedBy,
		InvoiceNumber:   req.InvoiceNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.maintenance.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListMaintenance(w http.ResponseWriter, r *http.Request) {
	f := repository.MaintenanceFilter{
		CarID:    queryInt32(r, "car_id", 0),
		Type:     domain.MaintenanceType(r.URL.Query().Get("type")),
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 10),
	}
	items, total, err := s.maintenance.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (s *Server) handleMaintenanceDue(w http.ResponseWriter, r *http.Request) {
	cars, err := s.maintenance.ListDueCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: cars, Total: int32(len(cars))})
}
