package db

import (
	"fmt"
	"strings"
	"time"
)

// ModOrigin records where a live mod file was activated from
type ModOrigin struct {
	Name      string
	Origin    string // Archive or file path, or "profile:<name>"
	AppliedAt time.Time
}

// ProfileOrigin is the origin recorded for mods restored from a profile
func ProfileOrigin(profileName string) string {
	return "profile:" + profileName
}

// SaveModOrigin records the origin of a live mod.
// Uses upsert so re-activating a name replaces its origin.
func (d *DB) SaveModOrigin(name, origin string) error {
	_, err := d.Exec(`
		INSERT INTO mod_origins (name, origin) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			origin = excluded.origin,
			applied_at = CURRENT_TIMESTAMP
	`, name, origin)
	if err != nil {
		return fmt.Errorf("saving mod origin: %w", err)
	}
	return nil
}

// GetModOrigins returns all recorded origins keyed by mod name
func (d *DB) GetModOrigins() (map[string]ModOrigin, error) {
	rows, err := d.Query(`SELECT name, origin, applied_at FROM mod_origins ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying mod origins: %w", err)
	}
	defer rows.Close()

	origins := make(map[string]ModOrigin)
	for rows.Next() {
		var o ModOrigin
		if err := rows.Scan(&o.Name, &o.Origin, &o.AppliedAt); err != nil {
			return nil, fmt.Errorf("scanning mod origin: %w", err)
		}
		origins[o.Name] = o
	}
	return origins, rows.Err()
}

// DeleteModOrigin forgets the origin of a single mod
func (d *DB) DeleteModOrigin(name string) error {
	if _, err := d.Exec(`DELETE FROM mod_origins WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting mod origin: %w", err)
	}
	return nil
}

// PruneModOrigins removes origins for every mod not in keep
func (d *DB) PruneModOrigins(keep []string) error {
	if len(keep) == 0 {
		if _, err := d.Exec(`DELETE FROM mod_origins`); err != nil {
			return fmt.Errorf("pruning mod origins: %w", err)
		}
		return nil
	}

	placeholders := make([]string, len(keep))
	args := make([]interface{}, len(keep))
	for i, name := range keep {
		placeholders[i] = "?"
		args[i] = name
	}

	query := fmt.Sprintf(`DELETE FROM mod_origins WHERE name NOT IN (%s)`, strings.Join(placeholders, ","))
	if _, err := d.Exec(query, args...); err != nil {
		return fmt.Errorf("pruning mod origins: %w", err)
	}
	return nil
}
