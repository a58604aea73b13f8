package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/nannyloop/internal/auth"
	"github.com/dukerupert/nannyloop/internal/email"
	"github.com/dukerupert/nannyloop/internal/store"
)

const maxActiveInvites = 50

type InviteHandler struct {
	inviteStore    *store.InviteCodeStore
	householdStore *store.HouseholdStore
	emailClient    *email.Client
	logger         *slog.Logger
}

func NewInviteHandler(is *store.InviteCodeStore, hs *store.HouseholdStore, ec *email.Client, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{
		inviteStore:    is,
		householdStore: hs,
		emailClient:    ec,
		logger:         logger,
	}
}

type createInviteRequest struct {
	ExpiresInHours int    `json:"expires_in_hours"`
	Email          string `json:"email"`
}

// Create issues a single-use invite code for the caller's household.
// When an email address is given and the mailer is configured, the code
// is also sent to the invitee.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.ExpiresInHours < 0 {
		writeError(w, http.StatusBadRequest, "expires_in_hours must be positive")
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresInHours > 0 {
		d := time.Duration(req.ExpiresInHours) * time.Hour
		expiresIn = &d
	}

	householdID := auth.HouseholdID(r.Context())
	invite, err := h.inviteStore.Create(householdID, auth.UserID(r.Context()), expiresIn)
	if err != nil {
		h.logger.Error("create invite failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if to := strings.TrimSpace(req.Email); to != "" && h.emailClient.Configured() {
		household, err := h.householdStore.GetByID(householdID)
		name := ""
		if err == nil && household != nil {
			name = household.Name
		}
		if err := h.emailClient.SendInvite(to, invite.Code, name); err != nil {
			// The code is already issued and shown in the response, so a
			// mail failure is not fatal to the request.
			h.logger.Error("invite email failed", "household_id", householdID, "error", err)
		}
	}

	h.logger.Info("invite created", "household_id", householdID, "invite_id", invite.ID)
	writeJSON(w, http.StatusCreated, invite)
}

// List returns the household's active (unused, unexpired) invite codes.
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	invites, err := h.inviteStore.ListActive(householdID, maxActiveInvites)
	if err != nil {
		h.logger.Error("list invites failed", "household_id", householdID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, invites)
}
