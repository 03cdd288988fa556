package sqlite

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
  uid TEXT PRIMARY KEY,
  goal TEXT NOT NULL CHECK(goal IN ('lose', 'maintain', 'gain')),
  target_calories INTEGER NOT NULL CHECK(target_calories > 0),
  weight REAL NOT NULL CHECK(weight > 0),
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS food_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  uid TEXT NOT NULL,
  date TEXT NOT NULL,
  name TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein INTEGER NOT NULL DEFAULT 0 CHECK(protein >= 0),
  carbs INTEGER NOT NULL DEFAULT 0 CHECK(carbs >= 0),
  fat INTEGER NOT NULL DEFAULT 0 CHECK(fat >= 0),
  quantity INTEGER NOT NULL DEFAULT 1 CHECK(quantity > 0),
  timestamp_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_food_items_uid_date ON food_items(uid, date);

CREATE TABLE IF NOT EXISTS reminders (
  id TEXT PRIMARY KEY,
  uid TEXT NOT NULL,
  label TEXT NOT NULL,
  frequency INTEGER NOT NULL CHECK(frequency >= 1),
  enabled INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reminders_uid ON reminders(uid);
`,
	},
}

// ApplyMigrations brings the schema up to date. Each migration runs once,
// tracked in schema_migrations.
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := db.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, m.version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.version, err)
		}
		if applied > 0 {
			continue
		}
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}
	return nil
}
