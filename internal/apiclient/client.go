// Package apiclient is the HTTP client for the caltrack backend. It is the
// concrete food-log, profile, and reminder store the core components read
// and write through.
package apiclient

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"caltrack/internal/model"
)

const defaultTimeout = 12 * time.Second

// Client talks to one caltrackd instance. The base URL is injected: it
// differs between environments and is never hardcoded here.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultTimeout)
	return &Client{http: c}
}

// WithHTTPClient swaps the underlying transport, used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http.SetTransport(hc.Transport)
	return c
}

type apiError struct {
	Error string `json:"error"`
}

// transportErr maps network-level failures onto ErrStoreUnavailable so
// callers can degrade uniformly.
func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %s", op, model.ErrStoreUnavailable, err)
}

// statusErr maps HTTP error responses. 5xx reads as the store being down;
// 404 and 409 keep their distinct meanings; anything else surfaces the
// server's message.
func statusErr(op string, resp *resty.Response, apiErr *apiError) error {
	code := resp.StatusCode()
	switch {
	case code >= 500:
		return fmt.Errorf("%s: %w: status %d", op, model.ErrStoreUnavailable, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	case code == http.StatusConflict:
		return fmt.Errorf("%s: %w", op, model.ErrAlreadyExists)
	}
	message := ""
	if apiErr != nil {
		message = apiErr.Error
	}
	if message == "" {
		message = fmt.Sprintf("status %d", code)
	}
	return fmt.Errorf("%s: %s", op, message)
}
