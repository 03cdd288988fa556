package apiclient

import (
	"context"
	"fmt"

	"caltrack/internal/model"
)

// LogFood appends a food item to the user's log for a local calendar date.
// The server assigns the item timestamp.
func (c *Client) LogFood(ctx context.Context, uid, date string, item model.FoodItem) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"uid": uid, "date": date, "foodItem": item}).
		SetError(&apiErr).
		Post("/api/daily-logs")
	if err != nil {
		return transportErr("log food", err)
	}
	if resp.IsError() {
		return statusErr("log food", resp, &apiErr)
	}
	return nil
}

// DailyLog fetches one day's log. An unlogged day comes back as an empty
// log, never an error.
func (c *Client) DailyLog(ctx context.Context, uid, date string) (model.DailyLog, error) {
	var out model.DailyLog
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get(fmt.Sprintf("/api/daily-logs/%s/%s", uid, date))
	if err != nil {
		return model.DailyLog{}, transportErr("fetch daily log", err)
	}
	if resp.IsError() {
		return model.DailyLog{}, statusErr("fetch daily log", resp, &apiErr)
	}
	return out, nil
}

// FetchRange bulk-fetches logs for a set of dates in one request. The
// backend returns them in request order with gaps filled by empty logs;
// analytics.MergeLogs re-checks the alignment anyway.
func (c *Client) FetchRange(ctx context.Context, uid string, dates []string) ([]model.DailyLog, error) {
	var out []model.DailyLog
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"uid": uid, "dates": dates}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/daily-logs/bulk")
	if err != nil {
		return nil, transportErr("bulk fetch daily logs", err)
	}
	if resp.IsError() {
		return nil, statusErr("bulk fetch daily logs", resp, &apiErr)
	}
	return out, nil
}

// DeleteFood removes the item whose timestamp matches exactly, in epoch
// milliseconds.
func (c *Client) DeleteFood(ctx context.Context, uid, date string, timestampMS int64) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiErr).
		Delete(fmt.Sprintf("/api/daily-logs/%s/%s/%d", uid, date, timestampMS))
	if err != nil {
		return transportErr("delete food item", err)
	}
	if resp.IsError() {
		return statusErr("delete food item", resp, &apiErr)
	}
	return nil
}
