package apiclient

import (
	"context"
	"fmt"

	"caltrack/internal/model"
)

// ProfileUpdate carries the fields a PATCH may change; nil fields are left
// untouched.
type ProfileUpdate struct {
	Goal           *model.Goal `json:"goal,omitempty"`
	TargetCalories *int        `json:"targetCalories,omitempty"`
	Weight         *float64    `json:"weight,omitempty"`
}

// CreateProfile creates the onboarding profile. A second create for the
// same uid fails with model.ErrAlreadyExists.
func (c *Client) CreateProfile(ctx context.Context, profile model.UserProfile) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"uid":            profile.UID,
			"goal":           profile.Goal,
			"targetCalories": profile.TargetCalories,
			"weight":         profile.Weight,
		}).
		SetError(&apiErr).
		Post("/api/users")
	if err != nil {
		return transportErr("create profile", err)
	}
	if resp.IsError() {
		return statusErr("create profile", resp, &apiErr)
	}
	return nil
}

// Profile fetches a user profile; a missing profile is model.ErrNotFound,
// unlike daily logs which always read as present.
func (c *Client) Profile(ctx context.Context, uid string) (model.UserProfile, error) {
	var out model.UserProfile
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get(fmt.Sprintf("/api/users/%s", uid))
	if err != nil {
		return model.UserProfile{}, transportErr("fetch profile", err)
	}
	if resp.IsError() {
		return model.UserProfile{}, statusErr("fetch profile", resp, &apiErr)
	}
	return out, nil
}

// UpdateProfile patches goal, target calories, or weight.
func (c *Client) UpdateProfile(ctx context.Context, uid string, updates ProfileUpdate) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(updates).
		SetError(&apiErr).
		Patch(fmt.Sprintf("/api/users/%s", uid))
	if err != nil {
		return transportErr("update profile", err)
	}
	if resp.IsError() {
		return statusErr("update profile", resp, &apiErr)
	}
	return nil
}
