package rest

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type carRequest struct {
	Brand                  string `json:"brand" validate:"required"`
	Model                  string `json:"model" validate:"required"`
	Year                   int32  `json:"year" validate:"required,gte=1990"`
	LicensePlate           string `json:"license_plate" validate:"required"`
	Color                  string `json:"color"`
	FuelType               string `json:"fuel_type" validate:"required,oneof=PETROL DIESEL ELECTRIC HYBRID"`
	Transmission           string `json:"transmission" validate:"required,oneof=MANUAL AUTOMATIC"`
	Seats                  int32  `json:"seats" validate:"required,gte=1"`
	Doors                  int32  `json:"doors" validate:"required,gte=2"`
	DailyPriceCents        int32  `json:"daily_price_cents" validate:"required,gt=0"`
	MileageKm              int32  `json:"mileage_km" validate:"gte=0"`
	MaintenanceThresholdKm int32  `json:"maintenance_threshold_km" validate:"gt=0"`
	Description            string `json:"description"`
}

func (req *carRequest) toDomain() *domain.Car {
	return &domain.Car{
		Brand:                  req.Brand,
		Model:                  req.Model,
		Year:                   req.Year,
		LicensePlate:           req.LicensePlate,
		Color:                  req.Color,
		FuelType:               domain.FuelType(req.FuelType),
		Transmission:           domain.Transmission(req.Transmission),
		Seats:                  req.Seats,
		Doors:                  req.Doors,
		DailyPriceCents:        req.DailyPriceCents,
		MileageKm:              req.MileageKm,
		MaintenanceThresholdKm: req.MaintenanceThresholdKm,
		IsActive:               true,
		Description:            req.Description,
	}
}

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req carRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	car := req.toDomain()
	if err := s.cars.Create(r.Context(), actor, car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
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
	var req carRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	car := req.toDomain()
	car.ID = id
	if err := s.cars.Update(r.Context(), actor, car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := s.cars.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	f := repository.CarFilter{
		Status:        domain.CarStatus(r.URL.Query().Get("status")),
		Query:         r.URL.Query().Get("q"),
		MaxPriceCents: queryInt32(r, "max_price_cents", 0),
		Page:          queryInt32(r, "page", 1),
		PageSize:      queryInt32(r, "page_size", 10),
	}
	items, total, err := s.cars.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (s *Server) handleSearchAvailableCars(w http.ResponseWriter, r *http.Request) {
	pickup, err := parseDate(r.URL.Query().Get("pickup_date"), "pickup_date")
	if err != nil {
		writeError(w, err)
		return
	}
	ret, err := parseDate(r.URL.Query().Get("return_date"), "return_date")
	if err != nil {
		writeError(w, err)
		return
	}
	f := repository.CarFilter{
		Query:         r.URL.Query().Get("q"),
		MaxPriceCents: queryInt32(r, "max_price_cents", 0),
		Page:          queryInt32(r, "page", 1),
		PageSize:      queryInt32(r, "page_size", 50),
	}
	cars, err := s.cars.SearchAvailable(r.Context(), f, pickup, ret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: cars, Total: int32(len(cars))})
}

func (s *Server) handleCarAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pickup, err := parseDate(r.URL.Query().Get("pickup_date"), "pickup_date")
	if err != nil {
		writeError(w, err)
		return
	}
	ret, err := parseDate(r.URL.Query().Get("return_date"), "return_date")
	if err != nil {
		writeError(w, err)
		return
	}
	available, err := s.reservations.IsCarAvailable(r.Context(), id, pickup, ret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}
