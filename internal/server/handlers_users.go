package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"caltrack/internal/model"
	"caltrack/internal/storage"
)

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UID            string  `json:"uid"`
		Goal           string  `json:"goal"`
		TargetCalories int     `json:"targetCalories"`
		Weight         float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.UID == "" || in.Goal == "" || in.TargetCalories == 0 || in.Weight == 0 {
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	goal, err := model.ParseGoal(in.Goal)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.TargetCalories < 1 {
		s.writeError(w, http.StatusBadRequest, "Target calories must be positive")
		return
	}
	if in.Weight <= 0 {
		s.writeError(w, http.StatusBadRequest, "Weight must be positive")
		return
	}

	profile, err := s.store.CreateProfile(r.Context(), model.UserProfile{
		UID:            in.UID,
		Goal:           goal,
		TargetCalories: in.TargetCalories,
		Weight:         in.Weight,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			s.writeError(w, http.StatusConflict, "User profile already exists")
			return
		}
		s.log.Error().Err(err).Msg("create profile")
		s.writeError(w, http.StatusInternalServerError, "Failed to create user profile")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User profile created successfully",
		"user":    profile,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	profile, err := s.store.Profile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "User profile not found")
			return
		}
		s.log.Error().Err(err).Str("uid", uid).Msg("fetch profile")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch user profile")
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	var in struct {
		Goal           *string  `json:"goal"`
		TargetCalories *int     `json:"targetCalories"`
		Weight         *float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	updates := storage.ProfileUpdates{TargetCalories: in.TargetCalories, Weight: in.Weight}
	if in.Goal != nil {
		goal, err := model.ParseGoal(*in.Goal)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updates.Goal = &goal
	}
	if in.TargetCalories != nil && *in.TargetCalories < 1 {
		s.writeError(w, http.StatusBadRequest, "Target calories must be positive")
		return
	}
	if in.Weight != nil && *in.Weight <= 0 {
		s.writeError(w, http.StatusBadRequest, "Weight must be positive")
		return
	}

	profile, err := s.store.UpdateProfile(r.Context(), uid, updates)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "User profile not found")
			return
		}
		s.log.Error().Err(err).Str("uid", uid).Msg("update profile")
		s.writeError(w, http.StatusInternalServerError, "Failed to update user profile")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "User profile updated successfully",
		"user":    profile,
	})
}
