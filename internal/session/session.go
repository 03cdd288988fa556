// Package session resolves the acting user and backend for CLI commands.
// There is no login flow: identity is injected per invocation, flag first,
// then environment.
package session

import (
	"fmt"
	"os"
	"strings"
)

const (
	uidEnv    = "CALTRACK_UID"
	apiURLEnv = "CALTRACK_API_URL"

	// DefaultAPIURL matches caltrackd's default port.
	DefaultAPIURL = "http://localhost:3000"
)

// UID resolves the acting user id: explicit flag value, then CALTRACK_UID.
// There is no anonymous fallback.
func UID(explicit string) (string, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(uidEnv)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no user id: pass --uid or set %s", uidEnv)
}

// APIURL resolves the backend base URL: explicit flag value, then
// CALTRACK_API_URL, then the local default.
func APIURL(explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(apiURLEnv)); v != "" {
		return v
	}
	return DefaultAPIURL
}
