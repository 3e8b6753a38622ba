package http

import (
	"encoding/json"
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps a taxonomy error to its status code and user-facing
// message. Internal failures are logged and reported generically.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := domain.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"message": domain.Message(err)})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.InvalidArgumentf("malformed request body")
	}
	return nil
}
