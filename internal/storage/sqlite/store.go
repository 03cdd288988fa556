// Package sqlite implements storage.Store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"caltrack/internal/model"
	"caltrack/internal/storage"
)

type Store struct {
	db *sql.DB
}

// NewStore opens the database at path and applies migrations.
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wires an existing connection, used by tests.
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	if err := ApplyMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *Store) Close() error                   { return s.db.Close() }

// --- Profiles ---

func (s *Store) CreateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE uid = ?`, profile.UID).Scan(&exists); err != nil {
		return model.UserProfile{}, fmt.Errorf("check existing profile: %w", err)
	}
	if exists > 0 {
		return model.UserProfile{}, model.ErrAlreadyExists
	}

	profile.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users(uid, goal, target_calories, weight, created_at)
VALUES(?, ?, ?, ?, ?)
`, profile.UID, string(profile.Goal), profile.TargetCalories, profile.Weight, profile.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("insert profile: %w", err)
	}
	return profile, nil
}

func (s *Store) Profile(ctx context.Context, uid string) (model.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT uid, goal, target_calories, weight, created_at FROM users WHERE uid = ?
`, uid)
	return scanProfile(row)
}

func (s *Store) UpdateProfile(ctx context.Context, uid string, updates storage.ProfileUpdates) (model.UserProfile, error) {
	current, err := s.Profile(ctx, uid)
	if err != nil {
		return model.UserProfile{}, err
	}
	if updates.Goal != nil {
		current.Goal = *updates.Goal
	}
	if updates.TargetCalories != nil {
		current.TargetCalories = *updates.TargetCalories
	}
	if updates.Weight != nil {
		current.Weight = *updates.Weight
	}
	_, err = s.db.ExecContext(ctx, `
UPDATE users SET goal = ?, target_calories = ?, weight = ? WHERE uid = ?
`, string(current.Goal), current.TargetCalories, current.Weight, uid)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return current, nil
}

func scanProfile(row *sql.Row) (model.UserProfile, error) {
	var p model.UserProfile
	var goal, createdAt string
	err := row.Scan(&p.UID, &goal, &p.TargetCalories, &p.Weight, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserProfile{}, model.ErrNotFound
		}
		return model.UserProfile{}, fmt.Errorf("scan profile: %w", err)
	}
	p.Goal = model.Goal(goal)
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("parse profile created_at: %w", err)
	}
	return p, nil
}

// --- Daily logs ---

// AppendFoodItem assigns the server-side timestamp, truncated to the
// millisecond it is keyed by, and lazily creates the day's log.
func (s *Store) AppendFoodItem(ctx context.Context, uid, date string, item model.FoodItem) (model.DailyLog, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.Timestamp = time.Now().UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO food_items(uid, date, name, calories, protein, carbs, fat, quantity, timestamp_ms)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, uid, date, item.Name, item.Calories, item.Protein, item.Carbs, item.Fat, item.Quantity, item.Timestamp.UnixMilli())
	if err != nil {
		return model.DailyLog{}, fmt.Errorf("insert food item: %w", err)
	}
	return s.DailyLog(ctx, uid, date)
}

func (s *Store) DailyLog(ctx context.Context, uid, date string) (model.DailyLog, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, calories, protein, carbs, fat, quantity, timestamp_ms
FROM food_items
WHERE uid = ? AND date = ?
ORDER BY id ASC
`, uid, date)
	if err != nil {
		return model.DailyLog{}, fmt.Errorf("query daily log: %w", err)
	}
	defer rows.Close()

	log := model.DailyLog{UID: uid, Date: date, Items: []model.FoodItem{}}
	for rows.Next() {
		var item model.FoodItem
		var tsMS int64
		if err := rows.Scan(&item.Name, &item.Calories, &item.Protein, &item.Carbs, &item.Fat, &item.Quantity, &tsMS); err != nil {
			return model.DailyLog{}, fmt.Errorf("scan food item: %w", err)
		}
		item.Timestamp = time.UnixMilli(tsMS).UTC()
		log.Items = append(log.Items, item)
	}
	if err := rows.Err(); err != nil {
		return model.DailyLog{}, fmt.Errorf("iterate food items: %w", err)
	}
	return log, nil
}

// DailyLogs returns one log per requested date, in request order, with
// absent days as empty logs.
func (s *Store) DailyLogs(ctx context.Context, uid string, dates []string) ([]model.DailyLog, error) {
	out := make([]model.DailyLog, 0, len(dates))
	for _, date := range dates {
		log, err := s.DailyLog(ctx, uid, date)
		if err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	return out, nil
}

// DeleteFoodItem removes the item whose timestamp matches exactly. It
// fails with model.ErrNotFound only when the day has no log at all.
func (s *Store) DeleteFoodItem(ctx context.Context, uid, date string, timestampMS int64) (model.DailyLog, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM food_items WHERE uid = ? AND date = ?`, uid, date).Scan(&exists); err != nil {
		return model.DailyLog{}, fmt.Errorf("check daily log: %w", err)
	}
	if exists == 0 {
		return model.DailyLog{}, model.ErrNotFound
	}

	_, err := s.db.ExecContext(ctx, `
DELETE FROM food_items WHERE uid = ? AND date = ? AND timestamp_ms = ?
`, uid, date, timestampMS)
	if err != nil {
		return model.DailyLog{}, fmt.Errorf("delete food item: %w", err)
	}
	return s.DailyLog(ctx, uid, date)
}

// --- Reminders ---

func (s *Store) Reminders(ctx context.Context, uid string) ([]model.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, uid, label, frequency, enabled, created_at
FROM reminders
WHERE uid = ?
ORDER BY rowid DESC
`, uid)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	out := make([]model.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return out, nil
}

func (s *Store) CreateReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	reminder.ID = uuid.NewString()
	reminder.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO reminders(id, uid, label, frequency, enabled, created_at)
VALUES(?, ?, ?, ?, ?, ?)
`, reminder.ID, reminder.UID, reminder.Label, reminder.Frequency, boolToInt(reminder.Enabled), reminder.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return model.Reminder{}, fmt.Errorf("insert reminder: %w", err)
	}
	return reminder, nil
}

func (s *Store) UpdateReminder(ctx context.Context, id string, updates storage.ReminderUpdates) (model.Reminder, error) {
	current, err := s.reminderByID(ctx, id)
	if err != nil {
		return model.Reminder{}, err
	}
	if updates.Label != nil {
		current.Label = *updates.Label
	}
	if updates.Frequency != nil {
		current.Frequency = *updates.Frequency
	}
	if updates.Enabled != nil {
		current.Enabled = *updates.Enabled
	}
	_, err = s.db.ExecContext(ctx, `
UPDATE reminders SET label = ?, frequency = ?, enabled = ? WHERE id = ?
`, current.Label, current.Frequency, boolToInt(current.Enabled), id)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}
	return current, nil
}

func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve deleted reminder count: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) reminderByID(ctx context.Context, id string) (model.Reminder, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, uid, label, frequency, enabled, created_at FROM reminders WHERE id = ?
`, id)
	rem, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reminder{}, model.ErrNotFound
		}
		return model.Reminder{}, err
	}
	return rem, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner) (model.Reminder, error) {
	var rem model.Reminder
	var enabled int
	var createdAt string
	if err := row.Scan(&rem.ID, &rem.UID, &rem.Label, &rem.Frequency, &enabled, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reminder{}, err
		}
		return model.Reminder{}, fmt.Errorf("scan reminder: %w", err)
	}
	rem.Enabled = enabled != 0
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("parse reminder created_at: %w", err)
	}
	rem.CreatedAt = parsed
	return rem, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
