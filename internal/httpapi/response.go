package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"bible-tui/internal/errors"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
	Success bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func success(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	writeJSON(w, status, Envelope{Success: true, Data: data}, logger)
}

// fail maps domain errors to their status. Anything else is a 500 with a
// generic message.
func fail(w http.ResponseWriter, err error, logger *slog.Logger) {
	var de *errors.Error
	if errors.As(err, &de) {
		status := de.HTTPStatus()
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "code", de.Code, "error", err)
		}
		writeJSON(w, status, Envelope{Error: de.Message, Details: de.Details}, logger)
		return
	}
	logger.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, Envelope{Error: "internal server error"}, logger)
}
