package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/api/http/middleware"
	"equiprent-backend/internal/ratelimit"
	"equiprent-backend/internal/service"
)

// ServiceName is reported by the banner and health endpoints.
const ServiceName = "equiprent-backend"

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth        *AuthHandler
	Equipment   *EquipmentHandler
	Reservation *ReservationHandler
	Stats       *StatsHandler
	Seed        *SeedHandler
}

func NewHandlers(
	authSvc service.AuthService,
	equipmentSvc service.EquipmentService,
	reservationSvc service.ReservationService,
	statsSvc service.StatsService,
	seedSvc service.SeedService,
) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(authSvc),
		Equipment:   NewEquipmentHandler(equipmentSvc),
		Reservation: NewReservationHandler(reservationSvc),
		Stats:       NewStatsHandler(statsSvc),
		Seed:        NewSeedHandler(seedSvc),
	}
}

// NewRouter wires all routes behind the middleware chain. Order matters:
// observability wraps everything, rate limiting runs before authentication
// so unauthenticated floods are throttled too, and the gateway runs last.
func NewRouter(h *Handlers, limiter *ratelimit.Limiter, gateway *middleware.AuthGateway) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Observability())
	r.Use(middleware.RateLimit(limiter))
	r.Use(gateway.Middleware())

	r.HandleFunc("/", rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	api.HandleFunc("/equipment", h.Equipment.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment", h.Equipment.Create).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}", h.Equipment.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", h.Equipment.Update).Methods(http.MethodPut)

	api.HandleFunc("/reservations", h.Reservation.List).Methods(http.MethodGet)
	api.HandleFunc("/reservations", h.Reservation.Create).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}", h.Reservation.Get).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}/status", h.Reservation.UpdateStatus).Methods(http.MethodPut)

	api.HandleFunc("/statistics", h.Stats.Get).Methods(http.MethodGet)
	api.HandleFunc("/seed-data", h.Seed.Seed).Methods(http.MethodPost)

	return r
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": ServiceName,
		"version": middleware.APIVersion,
		"docs":    "/docs",
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
	})
}
