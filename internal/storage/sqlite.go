// Package storage provides the SQLite replay journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/replay"
)

// timeLayout is how session start and end times are stored. It is fixed
// width so stored values sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// ReplayEntry summarizes one recorded session, without its events.
type ReplayEntry struct {
	ID        int64
	Seed      int64
	Preset    string
	Score     int
	Lines     int
	Ticks     int
	GameOver  bool
	Events    int
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the session ran.
func (e ReplayEntry) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
}

// JournalStats contains aggregate numbers over all recordings.
type JournalStats struct {
	Sessions   int
	TotalLines int
	TotalTicks int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows one writer; SSH sessions share this store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			config_yaml TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			game_over INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replay_events (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			at_ns INTEGER NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording and its events in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveRecording(rec replay.Recording) (int64, error) {
	cfgYAML, err := config.Marshal(rec.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO replays
		 (seed, preset, config_yaml, started_at, ended_at, score, lines, ticks, game_over)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed,
		rec.Preset,
		string(cfgYAML),
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
		rec.Score,
		rec.Lines,
		rec.Ticks,
		rec.GameOver,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO replay_events (replay_id, seq, kind, at_ns) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range rec.Events {
		if _, err := stmt.Exec(id, i, ev.Kind, int64(ev.At)); err != nil {
			return 0, fmt.Errorf("storage: cannot save event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Ensure Store implements replay.Saver
var _ replay.Saver = (*Store)(nil)

// Replays lists the most recent recordings, newest first.
func (s *Store) Replays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.seed, r.preset, r.score, r.lines, r.ticks, r.game_over,
		        r.started_at, r.ended_at,
		        (SELECT COUNT(*) FROM replay_events e WHERE e.replay_id = r.id)
		 FROM replays r
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var startedAt, endedAt string
		if err := rows.Scan(
			&e.ID,
			&e.Seed,
			&e.Preset,
			&e.Score,
			&e.Lines,
			&e.Ticks,
			&e.GameOver,
			&startedAt,
			&endedAt,
			&e.Events,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.StartedAt = parseTime(startedAt)
		e.EndedAt = parseTime(endedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadReplay retrieves a full recording by ID.
// Returns nil if no such replay exists.
func (s *Store) LoadReplay(id int64) (*replay.Recording, error) {
	var rec replay.Recording
	var cfgYAML, startedAt, endedAt string

	err := s.db.QueryRow(
		`SELECT id, seed, preset, config_yaml, started_at, ended_at, score, lines, ticks, game_over
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&rec.ID,
		&rec.Seed,
		&rec.Preset,
		&cfgYAML,
		&startedAt,
		&endedAt,
		&rec.Score,
		&rec.Lines,
		&rec.Ticks,
		&rec.GameOver,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rec.Config, err = config.Parse([]byte(cfgYAML))
	if err != nil {
		return nil, fmt.Errorf("storage: replay %d has bad config: %w", id, err)
	}
	rec.StartedAt = parseTime(startedAt)
	rec.EndedAt = parseTime(endedAt)

	rows, err := s.db.Query(
		"SELECT kind, at_ns FROM replay_events WHERE replay_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev replay.Event
		var atNS int64
		if err := rows.Scan(&ev.Kind, &atNS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		ev.At = time.Duration(atNS)
		rec.Events = append(rec.Events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// DeleteReplay removes a recording and its events.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM replay_events WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay events: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Stats returns aggregate numbers over the journal.
func (s *Store) Stats() (*JournalStats, error) {
	stats := &JournalStats{}
	var lastStarted sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(lines), 0), COALESCE(SUM(ticks), 0), MAX(started_at)
		 FROM replays`,
	).Scan(&stats.Sessions, &stats.TotalLines, &stats.TotalTicks, &lastStarted)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get journal stats: %w", err)
	}

	if lastStarted.Valid {
		stats.LastPlayed = parseTime(lastStarted.String)
	}
	return stats, nil
}

// parseTime reads a stored timestamp, returning the zero time if malformed.
func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
