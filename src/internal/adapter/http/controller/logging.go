package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MrFranklink/bank-backoffice/src/internal/commons"
	"github.com/MrFranklink/bank-backoffice/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

var errInvalidDateRange = errors.New("startDate and endDate must both be given in YYYY-MM-DD format")

// statusFromReason maps the service-level failure classification onto an
// HTTP status code.
func statusFromReason(reason commons.Reason) int {
	switch reason {
	case commons.ReasonValidation:
		return http.StatusBadRequest
	case commons.ReasonNotFound:
		return http.StatusNotFound
	case commons.ReasonBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
