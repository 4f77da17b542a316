package server

import (
	"chat-relay/errors"
	"encoding/json"
	"log/slog"
	"net/http"
)

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its status code. Server side failures are logged
// and their details kept out of the response.
func writeError(log *slog.Logger, w http.ResponseWriter, err error) {
	status := errors.MapToHTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		message = http.StatusText(status)
	}
	writeJSON(w, status, apiError{Error: message})
}
