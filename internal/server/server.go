// Package server is the caltrack REST backend: profile, daily-log, and
// reminder endpoints over a storage.Store.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"caltrack/internal/storage"
)

type Server struct {
	store storage.Store
	log   zerolog.Logger
}

func New(store storage.Store, log zerolog.Logger) *Server {
	return &Server{store: store, log: log}
}

// Router wires every route. Daily-log reads always answer 200 with an
// empty item list for unlogged days; profile reads answer 404 when absent.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", s.handleCreateProfile).Methods(http.MethodPost)
	api.HandleFunc("/users/{uid}", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/{uid}", s.handleUpdateProfile).Methods(http.MethodPatch)

	api.HandleFunc("/daily-logs", s.handleLogFood).Methods(http.MethodPost)
	api.HandleFunc("/daily-logs/bulk", s.handleBulkLogs).Methods(http.MethodPost)
	api.HandleFunc("/daily-logs/{uid}/{date}", s.handleGetDailyLog).Methods(http.MethodGet)
	api.HandleFunc("/daily-logs/{uid}/{date}/{timestamp}", s.handleDeleteFood).Methods(http.MethodDelete)

	api.HandleFunc("/reminders", s.handleCreateReminder).Methods(http.MethodPost)
	api.HandleFunc("/reminders/{uid}", s.handleListReminders).Methods(http.MethodGet)
	api.HandleFunc("/reminders/{id}", s.handleUpdateReminder).Methods(http.MethodPatch)
	api.HandleFunc("/reminders/{id}", s.handleDeleteReminder).Methods(http.MethodDelete)

	r.Use(mux.MiddlewareFunc(s.instrument))
	return s.recoverPanics(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "storage unreachable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "caltrack API is running"})
}
