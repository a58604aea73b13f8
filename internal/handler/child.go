package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/nannyloop/internal/auth"
	"github.com/dukerupert/nannyloop/internal/store"
	"github.com/dukerupert/nannyloop/internal/websocket"
)

type ChildHandler struct {
	childStore *store.ChildStore
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewChildHandler(cs *store.ChildStore, hub *websocket.Hub, logger *slog.Logger) *ChildHandler {
	return &ChildHandler{childStore: cs, hub: hub, logger: logger}
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	children, err := h.childStore.ListByHousehold(householdID)
	if err != nil {
		h.logger.Error("list children failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, children)
}

type createChildRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	householdID := auth.HouseholdID(r.Context())
	child, err := h.childStore.Create(householdID, req.Name, strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		h.logger.Error("create child failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(householdID, websocket.NewMessage("child", "created", child.ID, child.ID))
	writeJSON(w, http.StatusCreated, child)
}
