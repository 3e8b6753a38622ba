package http

import (
	"net/http"

	"equiprent-backend/internal/api/http/middleware"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
}

func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input service.CreateReservationInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	reservation, err := h.reservationSvc.CreateReservation(r.Context(), caller, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := domain.ReservationStatus(r.URL.Query().Get("status"))
	reservations, err := h.reservationSvc.ListReservations(r.Context(), caller, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	reservation, err := h.reservationSvc.GetReservation(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

type statusUpdateRequest struct {
	Status domain.ReservationStatus `json:"status"`
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req statusUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	reservation, err := h.reservationSvc.UpdateReservationStatus(r.Context(), caller, id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}
