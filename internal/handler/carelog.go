package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/nannyloop/internal/auth"
	"github.com/dukerupert/nannyloop/internal/carelog"
	"github.com/dukerupert/nannyloop/internal/store"
	"github.com/dukerupert/nannyloop/internal/websocket"
)

const defaultRecentLimit = 20

type CareLogHandler struct {
	ingest   *carelog.Service
	logStore *store.LogEntryStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewCareLogHandler(ingest *carelog.Service, ls *store.LogEntryStore, hub *websocket.Hub, logger *slog.Logger) *CareLogHandler {
	return &CareLogHandler{ingest: ingest, logStore: ls, hub: hub, logger: logger}
}

type createLogRequest struct {
	ChildID   int64  `json:"child_id"`
	CarerName string `json:"carer_name"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
}

// CreateLog records a care activity. Timestamp is optional YYYY-MM-DDTHH:MM;
// empty means now.
func (h *CareLogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req createLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	householdID := auth.HouseholdID(r.Context())
	entry, err := h.ingest.AddLog(householdID, req.ChildID, req.CarerName, req.Category, req.Notes, req.Timestamp)
	if err != nil {
		if writeIngestError(w, err) {
			return
		}
		h.logger.Error("create log failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(householdID, websocket.NewMessage("log", "created", entry.ID, entry.ChildID))
	writeJSON(w, http.StatusCreated, entry)
}

// ListRecent returns the household's newest log entries, most recent first.
func (h *CareLogHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.logStore.ListRecent(householdID, limit)
	if err != nil {
		h.logger.Error("list recent logs failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type createEventRequest struct {
	ChildID   int64  `json:"child_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	StartTime string `json:"start_time"`
}

// CreateEvent adds a planned schedule item for a child.
func (h *CareLogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	householdID := auth.HouseholdID(r.Context())
	item, err := h.ingest.AddEvent(householdID, req.ChildID, req.Title, req.Category, req.Notes, req.StartTime, auth.UserID(r.Context()))
	if err != nil {
		if writeIngestError(w, err) {
			return
		}
		h.logger.Error("create event failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(householdID, websocket.NewMessage("event", "created", item.ID, item.ChildID))
	writeJSON(w, http.StatusCreated, item)
}
