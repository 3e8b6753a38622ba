package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"equiprent-backend/internal/logger"
)

// APIVersion is the fixed marker attached to every response.
const APIVersion = "v1.0"

// headerWriter delays status emission so the processing duration can be
// attached as a header before the first byte goes out.
type headerWriter struct {
	http.ResponseWriter
	start       time.Time
	status      int
	wroteHeader bool
}

func (w *headerWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(w.start).Seconds()))
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Observability emits the request ID, API version and security headers,
// logs every request with its duration, and converts panics into a generic
// 500 without leaking internals to the client.
func Observability() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			w.Header().Set("X-Request-ID", requestID)
			w.Header().Set("X-API-Version", APIVersion)
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", "default-src 'self'")

			hw := &headerWriter{ResponseWriter: w, start: start}
			r = r.WithContext(WithRequestID(r.Context(), requestID))

			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("request panicked",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
						"duration_ms", time.Since(start).Milliseconds(),
						"request_id", requestID,
					)
					if !hw.wroteHeader {
						hw.Header().Set("Content-Type", "application/json")
						hw.WriteHeader(http.StatusInternalServerError)
						_ = json.NewEncoder(hw).Encode(map[string]string{"message": "internal server error"})
					}
				}
			}()

			next.ServeHTTP(hw, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", hw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", requestID,
				"remote", r.RemoteAddr,
			)
		})
	}
}
