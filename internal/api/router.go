package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fourline/gameroom/internal/api/handler"
	"github.com/fourline/gameroom/internal/api/middleware"
	"github.com/fourline/gameroom/internal/services/identity"
	"github.com/fourline/gameroom/internal/services/room"
	"github.com/fourline/gameroom/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	UserService     *user.Service
	RoomService     *room.Service
}

// NewRouter creates a new API router with all routes configured.
// Auth is wired per route rather than per subrouter because the same
// path can be public for one method and protected for another.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.UserService)
	roomHandler := handler.NewRoomHandler(cfg.RoomService)

	// Create middleware
	auth := middleware.Auth(cfg.IdentityService)
	requestIDMiddleware := middleware.RequestID()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(requestIDMiddleware)
	api.Use(loggingMiddleware)

	// User routes
	api.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)
	api.Handle("/users", auth(http.HandlerFunc(userHandler.List))).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", userHandler.Get).Methods(http.MethodGet)
	api.Handle("/users/{id}", auth(http.HandlerFunc(userHandler.Update))).Methods(http.MethodPut)
	api.Handle("/users/{id}", auth(http.HandlerFunc(userHandler.Delete))).Methods(http.MethodDelete)

	// Room routes (all require auth)
	api.Handle("/rooms", auth(http.HandlerFunc(roomHandler.Create))).Methods(http.MethodPost)
	api.Handle("/rooms", auth(http.HandlerFunc(roomHandler.List))).Methods(http.MethodGet)
	api.Handle("/rooms/join", auth(http.HandlerFunc(roomHandler.Join))).Methods(http.MethodPost)
	api.Handle("/rooms/name/{name}", auth(http.HandlerFunc(roomHandler.GetByName))).Methods(http.MethodGet)
	api.Handle("/rooms/{id}", auth(http.HandlerFunc(roomHandler.Get))).Methods(http.MethodGet)
	api.Handle("/rooms/{id}", auth(http.HandlerFunc(roomHandler.Update))).Methods(http.MethodPut)
	api.Handle("/rooms/{id}", auth(http.HandlerFunc(roomHandler.Delete))).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
