// Package app resolves per-user filesystem locations.
package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName          = "caltrack"
	dbFileName          = "caltrack.db"
	permissionStateFile = "notify-permission"
)

// DefaultDBPath is where the server keeps its database unless
// CALTRACK_DB_PATH overrides it.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// PermissionStatePath is where the agent persists the notification
// permission decision.
func PermissionStatePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, permissionStateFile), nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	return nil
}
