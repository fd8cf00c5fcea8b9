package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Activity is one journaled controller operation
type Activity struct {
	ID          int64
	Operation   string
	ProfileName string
	Added       int
	Removed     int
	Failed      int
	Detail      string
	CreatedAt   time.Time
}

// RecordActivity appends an entry to the journal
func (d *DB) RecordActivity(a Activity) error {
	_, err := d.Exec(`
		INSERT INTO activity (operation, profile_name, added, removed, failed, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.Operation, a.ProfileName, a.Added, a.Removed, a.Failed, a.Detail)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	return nil
}

// RecentActivity returns up to limit entries, newest first
func (d *DB) RecentActivity(limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.Query(`
		SELECT id, operation, profile_name, added, removed, failed, detail, created_at
		FROM activity
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	var entries []Activity
	for rows.Next() {
		var a Activity
		var profile, detail sql.NullString
		if err := rows.Scan(&a.ID, &a.Operation, &profile, &a.Added, &a.Removed, &a.Failed, &detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		a.ProfileName = profile.String
		a.Detail = detail.String
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
