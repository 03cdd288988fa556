// Package storage defines the persistence contract for the caltrack
// backend. Adapters live in subpackages.
package storage

import (
	"context"

	"caltrack/internal/model"
)

// ProfileUpdates lists the mutable profile fields; nil means unchanged.
type ProfileUpdates struct {
	Goal           *model.Goal
	TargetCalories *int
	Weight         *float64
}

// ReminderUpdates lists the mutable reminder fields; nil means unchanged.
type ReminderUpdates struct {
	Label     *string
	Frequency *int
	Enabled   *bool
}

// Store is the backend's persistence surface.
//
// Daily logs are keyed by (uid, date) and created lazily on first append;
// reads of absent days return an empty log, never an error. Profiles and
// reminders return model.ErrNotFound when absent.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	CreateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error)
	Profile(ctx context.Context, uid string) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, updates ProfileUpdates) (model.UserProfile, error)

	AppendFoodItem(ctx context.Context, uid, date string, item model.FoodItem) (model.DailyLog, error)
	DailyLog(ctx context.Context, uid, date string) (model.DailyLog, error)
	DailyLogs(ctx context.Context, uid string, dates []string) ([]model.DailyLog, error)
	DeleteFoodItem(ctx context.Context, uid, date string, timestampMS int64) (model.DailyLog, error)

	Reminders(ctx context.Context, uid string) ([]model.Reminder, error)
	CreateReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error)
	UpdateReminder(ctx context.Context, id string, updates ReminderUpdates) (model.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
}
