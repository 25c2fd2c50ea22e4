package rest

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// Server holds the HTTP handlers and their service dependencies.
type Server struct {
	reservations  service.ReservationService
	cars          service.CarService
	scores        service.ScoreService
	notifications service.NotificationService
	maintenance   service.MaintenanceService
	contracts     service.ContractService
	auth          service.AuthService
	tokens        *security.TokenManager
	validate      *validator.Validate
}

func NewServer(
	reservations service.ReservationService,
	cars service.CarService,
	scores service.ScoreService,
	notifications service.NotificationService,
	maintenance service.MaintenanceService,
	contracts service.ContractService,
	auth service.AuthService,
	tokens *security.TokenManager,
) *Server {
	return &Server{
		reservations:  reservations,
		cars:          cars,
		scores:        scores,
		notifications: notifications,
		maintenance:   maintenance,
		contracts:     contracts,
		auth:          auth,
		tokens:        tokens,
		validate:      validator.New(),
	}
}

// Router builds the full route table. /api routes require a valid token;
// /api/admin additionally requires an operator role.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/client/login", s.handleClientLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/client/register", s.handleClientRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/staff/login", s.handleStaffLogin).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authenticate(s.tokens))

	api.HandleFunc("/cars", s.handleListCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/available", s.handleSearchAvailableCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}", s.handleGetCar).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}/availability", s.handleCarAvailability).Methods(http.MethodGet)

	api.HandleFunc("/reservations", s.handleCreateReservation).Methods(http.MethodPost)
	api.HandleFunc("/reservations", s.handleListReservations).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}", s.handleGetReservation).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}/status", s.handleTransitionReservation).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{id:[0-9]+}/contract", s.handleGetContract).Methods(http.MethodGet)

	api.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods(http.MethodPut)

	api.HandleFunc("/clients/{id:[0-9]+}/score", s.handleCurrentScore).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(requireOperator)

	admin.HandleFunc("/cars", s.handleCreateCar).Methods(http.MethodPost)
	admin.HandleFunc("/cars/{id:[0-9]+}", s.handleUpdateCar).Methods(http.MethodPut)

	admin.HandleFunc("/reservations/pending-count", s.handlePendingCount).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}/contract", s.handleGenerateContract).Methods(http.MethodPost)

	admin.HandleFunc("/scores", s.handleAppendScore).Methods(http.MethodPost)
	admin.HandleFunc("/clients/{id:[0-9]+}/score/history", s.handleScoreHistory).Methods(http.MethodGet)

	admin.HandleFunc("/maintenance", s.handleRecordMaintenance).Methods(http.MethodPost)
	admin.HandleFunc("/maintenance", s.handleListMaintenance).Methods(http.MethodGet)
	admin.HandleFunc("/maintenance/due", s.handleMaintenanceDue).Methods(http.MethodGet)
	admin.HandleFunc("/maintenance/{id:[0-9]+}", s.handleGetMaintenance).Methods(http.MethodGet)

	return r
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, key string, def int32) int32 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}
