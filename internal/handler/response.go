package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hoaxify/hoaxify/internal/ctxkeys"
	"github.com/hoaxify/hoaxify/internal/i18n"
)

// apiError is the error body shape the clients expect.
type apiError struct {
	Path             string            `json:"path"`
	Timestamp        int64             `json:"timestamp"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a localized error body. messageKey and the values of
// validationErrors are message catalog keys resolved against the
// request's negotiated locale.
func writeError(w http.ResponseWriter, r *http.Request, status int, messageKey string, validationErrors map[string]string) {
	locale := ctxkeys.Locale(r.Context())

	var localized map[string]string
	if len(validationErrors) > 0 {
		localized = make(map[string]string, len(validationErrors))
		for field, key := range validationErrors {
			localized[field] = i18n.Message(locale, key)
		}
	}

	writeJSON(w, status, apiError{
		Path:             r.URL.Path,
		Timestamp:        time.Now().UnixMilli(),
		Message:          i18n.Message(locale, messageKey),
		ValidationErrors: localized,
	})
}

// writeMessage writes a localized success body.
func writeMessage(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	locale := ctxkeys.Locale(r.Context())
	writeJSON(w, status, map[string]string{
		"message": i18n.Message(locale, messageKey),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failure", nil)
		return false
	}
	return true
}
