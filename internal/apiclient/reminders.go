package apiclient

import (
	"context"
	"fmt"

	"caltrack/internal/model"
)

// ReminderUpdate carries the fields a PATCH may change; nil fields are left
// untouched.
type ReminderUpdate struct {
	Label     *string `json:"label,omitempty"`
	Frequency *int    `json:"frequency,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

type reminderEnvelope struct {
	Reminder model.Reminder `json:"reminder"`
}

// Reminders lists a user's reminders, newest first.
func (c *Client) Reminders(ctx context.Context, uid string) ([]model.Reminder, error) {
	var out []model.Reminder
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get(fmt.Sprintf("/api/reminders/%s", uid))
	if err != nil {
		return nil, transportErr("list reminders", err)
	}
	if resp.IsError() {
		return nil, statusErr("list reminders", resp, &apiErr)
	}
	return out, nil
}

// CreateReminder registers a new reminder; the backend rejects frequencies
// below one minute.
func (c *Client) CreateReminder(ctx context.Context, uid, label string, frequency int) (model.Reminder, error) {
	var out reminderEnvelope
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"uid": uid, "label": label, "frequency": frequency}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/reminders")
	if err != nil {
		return model.Reminder{}, transportErr("create reminder", err)
	}
	if resp.IsError() {
		return model.Reminder{}, statusErr("create reminder", resp, &apiErr)
	}
	return out.Reminder, nil
}

// UpdateReminder patches label, frequency, or enabled.
func (c *Client) UpdateReminder(ctx context.Context, id string, updates ReminderUpdate) (model.Reminder, error) {
	var out reminderEnvelope
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(updates).
		SetResult(&out).
		SetError(&apiErr).
		Patch(fmt.Sprintf("/api/reminders/%s", id))
	if err != nil {
		return model.Reminder{}, transportErr("update reminder", err)
	}
	if resp.IsError() {
		return model.Reminder{}, statusErr("update reminder", resp, &apiErr)
	}
	return out.Reminder, nil
}

// DeleteReminder removes a reminder. Callers also cancel any pending
// notification for the id.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiErr).
		Delete(fmt.Sprintf("/api/reminders/%s", id))
	if err != nil {
		return transportErr("delete reminder", err)
	}
	if resp.IsError() {
		return statusErr("delete reminder", resp, &apiErr)
	}
	return nil
}
