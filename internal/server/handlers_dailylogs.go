package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"caltrack/internal/model"
)

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func (s *Server) handleLogFood(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UID      string          `json:"uid"`
		Date     string          `json:"date"`
		FoodItem *model.FoodItem `json:"foodItem"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.UID == "" || in.Date == "" || in.FoodItem == nil {
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !validDate(in.Date) {
		s.writeError(w, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
		return
	}
	item := *in.FoodItem
	if strings.TrimSpace(item.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "Food name is required")
		return
	}
	if item.Calories < 0 || item.Protein < 0 || item.Carbs < 0 || item.Fat < 0 {
		s.writeError(w, http.StatusBadRequest, "Nutrient values must not be negative")
		return
	}
	if item.Quantity < 0 {
		s.writeError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	log, err := s.store.AppendFoodItem(r.Context(), in.UID, in.Date, item)
	if err != nil {
		s.log.Error().Err(err).Str("uid", in.UID).Str("date", in.Date).Msg("log food")
		s.writeError(w, http.StatusInternalServerError, "Failed to log food item")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Food item logged successfully",
		"dailyLog": log,
	})
}

func (s *Server) handleGetDailyLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid, date := vars["uid"], vars["date"]

	log, err := s.store.DailyLog(r.Context(), uid, date)
	if err != nil {
		s.log.Error().Err(err).Str("uid", uid).Str("date", date).Msg("fetch daily log")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch daily log")
		return
	}
	s.writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleBulkLogs(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UID   string   `json:"uid"`
		Dates []string `json:"dates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.UID == "" || in.Dates == nil {
		s.writeError(w, http.StatusBadRequest, "Missing required fields or invalid dates")
		return
	}

	logs, err := s.store.DailyLogs(r.Context(), in.UID, in.Dates)
	if err != nil {
		s.log.Error().Err(err).Str("uid", in.UID).Msg("bulk fetch daily logs")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch daily logs")
		return
	}
	s.writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid, date := vars["uid"], vars["date"]

	timestampMS, err := strconv.ParseInt(vars["timestamp"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid timestamp")
		return
	}

	log, err := s.store.DeleteFoodItem(r.Context(), uid, date, timestampMS)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Daily log not found")
			return
		}
		s.log.Error().Err(err).Str("uid", uid).Str("date", date).Msg("delete food item")
		s.writeError(w, http.StatusInternalServerError, "Failed to delete food item")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Food item deleted successfully",
		"dailyLog": log,
	})
}
