package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/api/http/middleware"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/service"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.InvalidArgumentf("invalid id %q", raw)
	}
	return int32(id), nil
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.EquipmentFilter{
		Category:      q.Get("category"),
		Status:        domain.EquipmentStatus(q.Get("status")),
		AvailableOnly: q.Get("available_only") == "true",
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, r, domain.InvalidArgumentf("unknown equipment status %q", filter.Status))
		return
	}

	items, err := h.equipmentSvc.ListEquipment(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.equipmentSvc.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var eq domain.Equipment
	if err := decodeBody(r, &eq); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.equipmentSvc.CreateEquipment(r.Context(), caller, &eq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var upd domain.EquipmentUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.equipmentSvc.UpdateEquipment(r.Context(), caller, id, &upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
