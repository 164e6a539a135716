// Package storage provides SQLite-based run history for reflex.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/reflex/internal/game"
	"github.com/vovakirdan/reflex/internal/gesture"
)

// timeLayout is how run and round timestamps are stored. Fixed width so
// that text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunEntry is a stored run.
type RunEntry struct {
	ID int64
	game.RunRecord
}

// RoundEntry is a stored round.
type RoundEntry struct {
	ID int64
	game.RoundRecord
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Sessions of the SSH server write concurrently; one connection
	// serializes them instead of failing with SQLITE_BUSY.
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			result TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			board_rank INTEGER NOT NULL DEFAULT -1,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			target TEXT NOT NULL,
			detected TEXT NOT NULL,
			success INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			played_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_run_id ON rounds(run_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_target ON rounds(target);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r game.RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, player, name, difficulty, score, result, rounds, board_rank, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Name, r.Difficulty, r.Score, r.Result(), r.Rounds, r.Rank,
		formatTime(r.Started), formatTime(r.Finished),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveRound records a finished round. Returns the ID of the inserted record.
func (s *Store) SaveRound(r game.RoundRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (run_id, player, level, difficulty, target, detected, success, elapsed_ms, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Player, r.Level, r.Difficulty, r.Target.String(), r.Detected.String(),
		r.Success(), r.Elapsed.Milliseconds(), formatTime(r.At),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RoundFinished implements game.Recorder.
func (s *Store) RoundFinished(r game.RoundRecord) error {
	_, err := s.SaveRound(r)
	return err
}

// RunFinished implements game.Recorder.
func (s *Store) RunFinished(r game.RunRecord) error {
	_, err := s.SaveRun(r)
	return err
}

// Ensure Store implements Recorder
var _ game.Recorder = (*Store)(nil)

const runColumns = `id, run_id, player, name, difficulty, score, result, rounds, board_rank, started_at, finished_at`

// RecentRuns retrieves the most recently finished runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY finished_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// TopRuns retrieves the best runs by score. Among equal scores the
// earlier run comes first.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunEntry, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var result string
		var started, finished any
		if err := rows.Scan(
			&e.ID,
			&e.RunRecord.ID,
			&e.Player,
			&e.Name,
			&e.Difficulty,
			&e.Score,
			&result,
			&e.Rounds,
			&e.Rank,
			&started,
			&finished,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Won = result == game.StateWin.String()
		e.Started = parseTime(started)
		e.Finished = parseTime(finished)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// RunRounds retrieves the rounds of one run in the order they were played.
func (s *Store) RunRounds(runID string) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, player, level, difficulty, target, detected, elapsed_ms, played_at
		 FROM rounds
		 WHERE run_id = ?
		 ORDER BY level ASC, id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var target, detected string
		var elapsedMS int64
		var playedAt any
		if err := rows.Scan(
			&e.ID,
			&e.RunID,
			&e.Player,
			&e.Level,
			&e.Difficulty,
			&target,
			&detected,
			&elapsedMS,
			&playedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Target = gesture.ParseKind(target)
		e.Detected = gesture.ParseKind(detected)
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.At = parseTime(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearHistory deletes every stored run and round.
func (s *Store) ClearHistory() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"rounds", "runs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs       int
	Wins       int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(result = ?), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), MAX(finished_at)
		 FROM runs`,
		game.StateWin.String(),
	).Scan(&stats.Runs, &stats.Wins, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}
	return stats, nil
}

// GestureStats aggregates the rounds played for one target gesture.
type GestureStats struct {
	Target     gesture.Kind
	Rounds     int
	Successes  int
	AvgElapsed time.Duration // over successful rounds
}

// SuccessRate returns the fraction of rounds won, 0 when none were played.
func (g GestureStats) SuccessRate() float64 {
	if g.Rounds == 0 {
		return 0
	}
	return float64(g.Successes) / float64(g.Rounds)
}

// GetGestureStats retrieves per-gesture statistics ordered by gesture name.
func (s *Store) GetGestureStats() ([]GestureStats, error) {
	rows, err := s.db.Query(
		`SELECT target, COUNT(*), COALESCE(SUM(success), 0),
		        COALESCE(AVG(CASE WHEN success THEN elapsed_ms END), 0)
		 FROM rounds
		 GROUP BY target
		 ORDER BY target`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get gesture stats: %w", err)
	}
	defer rows.Close()

	var stats []GestureStats
	for rows.Next() {
		var g GestureStats
		var target string
		var avgMS float64
		if err := rows.Scan(&target, &g.Rounds, &g.Successes, &avgMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.Target = gesture.ParseKind(target)
		g.AvgElapsed = time.Duration(avgMS * float64(time.Millisecond))
		stats = append(stats, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp; the driver may hand back either a
// time.Time or the stored text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
