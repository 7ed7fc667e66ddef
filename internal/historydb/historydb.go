// Package historydb persists per-title resume positions across runs, keyed
// by the playlist entry string itself rather than a TMDB ID. Grounded on the teacher's
// internal/db/db.go (WAL-mode sqlite open/migrate) and internal/db/history.go
// (upsert-by-key progress tracking), narrowed from a full watch-history and
// torrent-cache schema down to the single resume_positions table the
// --resume flag needs.
package historydb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection used to remember playback
// positions between invocations.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath, runs migrations,
// and returns a ready-to-use DB handle.
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	d := &DB{db: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) migrate() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS resume_positions (
			content_key TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			position    REAL DEFAULT 0,
			duration    REAL DEFAULT 0,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("exec migration: %w", err)
	}
	return nil
}

// SavePosition records the current playback position for contentKey. The
// supervisor calls it on every watchdog tick while playing; no extra save
// is made on teardown.
func (d *DB) SavePosition(contentKey, title string, position, duration float64) error {
	_, err := d.db.Exec(`
		INSERT INTO resume_positions (content_key, title, position, duration, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(content_key) DO UPDATE SET
			title      = excluded.title,
			position   = excluded.position,
			duration   = excluded.duration,
			updated_at = CURRENT_TIMESTAMP
	`, contentKey, title, position, duration)
	if err != nil {
		return fmt.Errorf("save position for %q: %w", contentKey, err)
	}
	return nil
}

// Position is a previously saved resume point for one piece of content.
type Position struct {
	Position float64
	Duration float64
}

// resumeMargin is how close to the end a saved position must be to be
// treated as "finished" rather than resumable.
const resumeMargin = 30 // seconds

// LoadPosition returns the saved resume point for contentKey, or ok=false
// if none exists or playback was already within resumeMargin of the end.
func (d *DB) LoadPosition(contentKey string) (pos Position, ok bool, err error) {
	row := d.db.QueryRow(`
		SELECT position, duration FROM resume_positions WHERE content_key = ?
	`, contentKey)

	if err := row.Scan(&pos.Position, &pos.Duration); err != nil {
		if err == sql.ErrNoRows {
			return Position{}, false, nil
		}
		return Position{}, false, fmt.Errorf("load position for %q: %w", contentKey, err)
	}

	if pos.Duration > 0 && pos.Duration-pos.Position < resumeMargin {
		return Position{}, false, nil
	}
	return pos, true, nil
}

// ClearPosition removes a saved resume point, e.g. once a title finishes.
func (d *DB) ClearPosition(contentKey string) error {
	_, err := d.db.Exec("DELETE FROM resume_positions WHERE content_key = ?", contentKey)
	if err != nil {
		return fmt.Errorf("clear position for %q: %w", contentKey, err)
	}
	return nil
}

// ContentKey derives the storage key for a playlist entry: the entry string
// (file path, URL, magnet URI or .torrent path), unchanged.
func ContentKey(value string) string {
	return value
}
