package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/nannyloop/internal/carelog"
	"github.com/dukerupert/nannyloop/internal/timetable"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeIngestError maps ingestion sentinel errors to client-facing statuses.
// It returns false when the error was not a known domain failure.
func writeIngestError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, carelog.ErrChildNotFound):
		writeError(w, http.StatusNotFound, "child not found")
	case errors.Is(err, carelog.ErrMissingRequiredField):
		writeError(w, http.StatusBadRequest, "missing required field")
	case errors.Is(err, carelog.ErrInvalidDateFormat),
		errors.Is(err, timetable.ErrInvalidDateFormat):
		writeError(w, http.StatusBadRequest, "invalid date format")
	default:
		return false
	}
	return true
}
