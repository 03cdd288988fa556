package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"caltrack/internal/model"
	"caltrack/internal/storage"
)

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	reminders, err := s.store.Reminders(r.Context(), uid)
	if err != nil {
		s.log.Error().Err(err).Str("uid", uid).Msg("list reminders")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch reminders")
		return
	}
	s.writeJSON(w, http.StatusOK, reminders)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UID       string `json:"uid"`
		Label     string `json:"label"`
		Frequency int    `json:"frequency"`
		Enabled   *bool  `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.UID == "" || strings.TrimSpace(in.Label) == "" || in.Frequency == 0 {
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if in.Frequency < 1 {
		s.writeError(w, http.StatusBadRequest, "Frequency must be at least 1 minute")
		return
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	reminder, err := s.store.CreateReminder(r.Context(), model.Reminder{
		UID:       in.UID,
		Label:     strings.TrimSpace(in.Label),
		Frequency: in.Frequency,
		Enabled:   enabled,
	})
	if err != nil {
		s.log.Error().Err(err).Str("uid", in.UID).Msg("create reminder")
		s.writeError(w, http.StatusInternalServerError, "Failed to create reminder")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Reminder created successfully",
		"reminder": reminder,
	})
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var in struct {
		Label     *string `json:"label"`
		Frequency *int    `json:"frequency"`
		Enabled   *bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Frequency != nil && *in.Frequency < 1 {
		s.writeError(w, http.StatusBadRequest, "Frequency must be at least 1 minute")
		return
	}
	if in.Label != nil && strings.TrimSpace(*in.Label) == "" {
		s.writeError(w, http.StatusBadRequest, "Label must not be empty")
		return
	}

	reminder, err := s.store.UpdateReminder(r.Context(), id, storage.ReminderUpdates{
		Label:     in.Label,
		Frequency: in.Frequency,
		Enabled:   in.Enabled,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		s.log.Error().Err(err).Str("id", id).Msg("update reminder")
		s.writeError(w, http.StatusInternalServerError, "Failed to update reminder")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Reminder updated successfully",
		"reminder": reminder,
	})
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.store.DeleteReminder(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Reminder not found")
			return
		}
		s.log.Error().Err(err).Str("id", id).Msg("delete reminder")
		s.writeError(w, http.StatusInternalServerError, "Failed to delete reminder")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Reminder deleted successfully",
	})
}
