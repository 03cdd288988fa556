package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"caltrack/internal/model"
)

func TestDailyLogParsesItems(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/daily-logs/u1/2026-02-10" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "uid": "u1",
  "date": "2026-02-10",
  "items": [
    {"name": "oats", "calories": 350, "protein": 12, "carbs": 60, "fat": 6, "quantity": 1, "timestamp": "2026-02-10T08:15:00Z"}
  ]
}`))
	}))
	defer ts.Close()

	log, err := New(ts.URL).DailyLog(context.Background(), "u1", "2026-02-10")
	if err != nil {
		t.Fatalf("fetch daily log: %v", err)
	}
	if len(log.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(log.Items))
	}
	item := log.Items[0]
	if item.Name != "oats" || item.Calories != 350 || item.Protein != 12 || item.Carbs != 60 || item.Fat != 6 {
		t.Fatalf("nutrients not preserved: %+v", item)
	}
}

func TestFetchRangeSendsDatesAndParsesOrder(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/daily-logs/bulk" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			UID   string   `json:"uid"`
			Dates []string `json:"dates"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode bulk body: %v", err)
		}
		if body.UID != "u1" || len(body.Dates) != 2 {
			t.Errorf("unexpected bulk body %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"uid": "u1", "date": "2026-02-09", "items": []},
  {"uid": "u1", "date": "2026-02-10", "items": [{"name": "soup", "calories": 240, "quantity": 1, "timestamp": "2026-02-10T12:00:00Z"}]}
]`))
	}))
	defer ts.Close()

	logs, err := New(ts.URL).FetchRange(context.Background(), "u1", []string{"2026-02-09", "2026-02-10"})
	if err != nil {
		t.Fatalf("bulk fetch: %v", err)
	}
	if len(logs) != 2 || logs[0].Date != "2026-02-09" || logs[1].Items[0].Calories != 240 {
		t.Fatalf("unexpected bulk result %+v", logs)
	}
}

func TestFetchRangeServerErrorIsStoreUnavailable(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := New(ts.URL).FetchRange(context.Background(), "u1", []string{"2026-02-10"})
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestFetchRangeConnectionRefusedIsStoreUnavailable(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listening any more

	_, err := New(ts.URL).FetchRange(context.Background(), "u1", []string{"2026-02-10"})
	if !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestProfileMissingIsNotFound(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"User profile not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := New(ts.URL).Profile(context.Background(), "ghost")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateProfileConflict(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"User profile already exists"}`, http.StatusConflict)
	}))
	defer ts.Close()

	err := New(ts.URL).CreateProfile(context.Background(), model.UserProfile{UID: "u1", Goal: model.GoalLose, TargetCalories: 1800, Weight: 80})
	if !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateReminderParsesEnvelope(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
  "message": "Reminder created successfully",
  "reminder": {"id": "r-1", "uid": "u1", "label": "drink water", "frequency": 60, "enabled": true, "createdAt": "2026-02-10T08:00:00Z"}
}`))
	}))
	defer ts.Close()

	rem, err := New(ts.URL).CreateReminder(context.Background(), "u1", "drink water", 60)
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	if rem.ID != "r-1" || rem.Frequency != 60 || !rem.Enabled {
		t.Fatalf("unexpected reminder %+v", rem)
	}
}

func TestLogFoodSurfacesServerValidationMessage(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing required fields"}`))
	}))
	defer ts.Close()

	err := New(ts.URL).LogFood(context.Background(), "u1", "2026-02-10", model.FoodItem{})
	if err == nil || errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected a plain validation error, got %v", err)
	}
}
