package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/nannyloop/internal/carelog"
	"github.com/dukerupert/nannyloop/internal/email"
	"github.com/dukerupert/nannyloop/internal/handler"
	"github.com/dukerupert/nannyloop/internal/middleware"
	"github.com/dukerupert/nannyloop/internal/model"
	"github.com/dukerupert/nannyloop/internal/store"
	"github.com/dukerupert/nannyloop/internal/timetable"
	ws "github.com/dukerupert/nannyloop/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	childH       *handler.ChildHandler
	careLogH     *handler.CareLogHandler
	timetableH   *handler.TimetableHandler
	inviteH      *handler.InviteHandler
	sessionStore *store.SessionStore
	userStore    *store.UserStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, emailClient *email.Client, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	householdStore := store.NewHouseholdStore(db)
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	childStore := store.NewChildStore(db)
	logStore := store.NewLogEntryStore(db)
	scheduleStore := store.NewScheduleItemStore(db)
	inviteStore := store.NewInviteCodeStore(db)

	ingest := carelog.NewService(childStore, logStore, scheduleStore)
	builder := timetable.NewBuilder(logStore, scheduleStore)

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, householdStore, sessionStore, inviteStore, logger.With("component", "auth")),
		childH:       handler.NewChildHandler(childStore, hub, logger.With("component", "child")),
		careLogH:     handler.NewCareLogHandler(ingest, logStore, hub, logger.With("component", "carelog")),
		timetableH:   handler.NewTimetableHandler(childStore, builder, logger.With("component", "timetable")),
		inviteH:      handler.NewInviteHandler(inviteStore, householdStore, emailClient, logger.With("component", "invite")),
		sessionStore: sessionStore,
		userStore:    userStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Children API routes
	mux.HandleFunc("GET /api/children", s.childH.List)
	mux.HandleFunc("POST /api/children", s.childH.Create)

	// Log and schedule API routes
	mux.HandleFunc("GET /api/logs", s.careLogH.ListRecent)
	mux.HandleFunc("POST /api/logs", s.careLogH.CreateLog)
	mux.HandleFunc("POST /api/events", s.careLogH.CreateEvent)

	// Timetable API route
	mux.HandleFunc("GET /api/timetable", s.timetableH.Get)

	// Invite API routes, parent only
	parentOnly := middleware.RequireRole(model.RoleParent)
	mux.Handle("GET /api/invites", parentOnly(http.HandlerFunc(s.inviteH.List)))
	mux.Handle("POST /api/invites", parentOnly(http.HandlerFunc(s.inviteH.Create)))

	// WebSocket for live updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
