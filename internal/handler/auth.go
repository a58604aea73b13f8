package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/nannyloop/internal/middleware"
	"github.com/dukerupert/nannyloop/internal/model"
	"github.com/dukerupert/nannyloop/internal/store"
)

const sessionTTL = 30 * 24 * time.Hour

type AuthHandler struct {
	userStore      *store.UserStore
	householdStore *store.HouseholdStore
	sessionStore   *store.SessionStore
	inviteStore    *store.InviteCodeStore
	logger         *slog.Logger
}

func NewAuthHandler(
	us *store.UserStore,
	hs *store.HouseholdStore,
	ss *store.SessionStore,
	is *store.InviteCodeStore,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:      us,
		householdStore: hs,
		sessionStore:   ss,
		inviteStore:    is,
		logger:         logger,
	}
}

type registerRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	HouseholdName string `json:"household_name"`
	InviteCode    string `json:"invite_code"`
}

// Register creates an account. Without an invite code it creates a new
// household with the caller as parent; with one it joins the issuing
// household as carer, consuming the code.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	existing, err := h.userStore.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("register email lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hash failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var user *model.User
	if strings.TrimSpace(req.InviteCode) != "" {
		user, err = h.registerWithInvite(req.Email, string(hash), strings.TrimSpace(req.InviteCode))
	} else {
		user, err = h.registerParent(req.Email, string(hash), req.HouseholdName)
	}
	if err != nil {
		if errors.Is(err, store.ErrInviteInvalid) {
			writeError(w, http.StatusBadRequest, "invite code is invalid or expired")
			return
		}
		h.logger.Error("registration failed", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.startSession(w, user.ID); err != nil {
		h.logger.Error("session create failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) registerParent(email, hash, householdName string) (*model.User, error) {
	householdName = strings.TrimSpace(householdName)
	if householdName == "" {
		householdName = "My Household"
	}
	household, err := h.householdStore.Create(householdName)
	if err != nil {
		return nil, err
	}
	return h.userStore.Create(email, hash, model.RoleParent, household.ID)
}

func (h *AuthHandler) registerWithInvite(email, hash, code string) (*model.User, error) {
	invite, err := h.inviteStore.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, store.ErrInviteInvalid
	}

	user, err := h.userStore.Create(email, hash, model.RoleCarer, invite.HouseholdID)
	if err != nil {
		return nil, err
	}

	// Consume is a conditional update, so a code raced to use twice only
	// admits one account. Roll the user back if we lost.
	if _, err := h.inviteStore.Consume(code, user.ID); err != nil {
		if delErr := h.userStore.Delete(user.ID); delErr != nil {
			h.logger.Error("orphaned user cleanup failed", "user_id", user.ID, "error", delErr)
		}
		return nil, err
	}
	return user, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userStore.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		h.logger.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.startSession(w, user.ID); err != nil {
		h.logger.Error("session create failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName()); err == nil && cookie.Value != "" {
		if err := h.sessionStore.Delete(cookie.Value); err != nil {
			h.logger.Error("session delete failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, userID int64) error {
	sess, err := h.sessionStore.Create(userID, sessionTTL)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName(),
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
