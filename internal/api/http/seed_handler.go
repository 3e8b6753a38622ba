package http

import (
	"net/http"

	"equiprent-backend/internal/service"
)

type SeedHandler struct {
	seedSvc service.SeedService
}

func NewSeedHandler(seedSvc service.SeedService) *SeedHandler {
	return &SeedHandler{seedSvc: seedSvc}
}

func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	created, err := h.seedSvc.Seed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "data already exists"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "sample data created"})
}
