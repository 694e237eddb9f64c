package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRecord is one finished run.
type RunRecord struct {
	ID              int64
	RunID           string
	Level           int
	Score           int
	Stars           int
	Outcome         string // "completed" or "failed"
	Pops            int
	AvoidViolations int
	Duration        time.Duration
	CreatedAt       time.Time
}

// SaveRun records a finished run. Saving the same run id twice keeps the first.
// Returns the ID of the inserted record, or 0 for a duplicate.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if err := validLevel(r.Level); err != nil {
		return 0, err
	}
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO runs
		 (run_id, level, score, stars, outcome, pops, avoid_violations, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Level, r.Score, r.Stars, r.Outcome, r.Pops, r.AvoidViolations, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return 0, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N runs for a level, best score first.
func (s *Store) TopScores(level, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, level, score, stars, outcome, pops, avoid_violations, duration_ms, created_at
		 FROM runs
		 WHERE level = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Level, &r.Score, &r.Stars, &r.Outcome,
			&r.Pops, &r.AvoidViolations, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns the highest score recorded for a level, or 0.
func (s *Store) HighScore(level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE level = ?", level).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all runs for a level.
func (s *Store) ClearScores(level int) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for one level.
type LevelStats struct {
	Level      int
	Runs       int
	Completed  int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[int]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), SUM(outcome = 'completed'), MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Runs, &st.Completed, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Level] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
