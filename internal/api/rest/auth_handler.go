package rest

import (
	"net/http"

	"carrental-backend/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerClientRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	PhoneNumber   string `json:"phone_number" validate:"required"`
	NationalID    string `json:"national_id" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
	LicenseExpiry string `json:"license_expiry" validate:"required"`
}

func (s *Server) handleClientLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token, client, err := s.auth.ClientLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "client": client})
}

func (s *Server) handleStaffLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token, staff, err := s.auth.StaffLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "staff": staff})
}

func (s *Server) handleClientRegister(w http.ResponseWriter, r *http.Request) {
	var req registerClientRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	expiry, err := parseDate(req.LicenseExpiry, "license_expiry")
	if err != nil {
		writeError(w, err)
		return
	}
	client := &domain.Client{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		NationalID:  req.NationalID,
		License: domain.DrivingLicense{
			Number:     req.LicenseNumber,
			ExpiryDate: expiry,
		},
	}
	if err := s.auth.RegisterClient(r.Context(), client, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}
