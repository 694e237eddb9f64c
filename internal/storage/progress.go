package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LevelProgress is the best result achieved on a completed level.
type LevelProgress struct {
	Level       int
	Stars       int
	BestScore   int
	CompletedAt time.Time // first completion
	UpdatedAt   time.Time
}

// CompleteLevel records a level completion. Stars and score only ever
// improve; the first completion time is kept.
func (s *Store) CompleteLevel(level, stars, score int) (LevelProgress, error) {
	if err := validLevel(level); err != nil {
		return LevelProgress{}, err
	}
	stars = min(max(stars, 0), 3)
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO level_progress (level, stars, best_score, completed_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(level) DO UPDATE SET
		   stars = MAX(stars, excluded.stars),
		   best_score = MAX(best_score, excluded.best_score),
		   updated_at = excluded.updated_at`,
		level, stars, score, now, now,
	)
	if err != nil {
		return LevelProgress{}, fmt.Errorf("storage: cannot record completion: %w", err)
	}
	p, _, err := s.LevelProgress(level)
	return p, err
}

// LevelProgress returns the progress of one level and whether it was completed.
func (s *Store) LevelProgress(level int) (LevelProgress, bool, error) {
	var p LevelProgress
	var completedAt, updatedAt any
	err := s.db.QueryRow(
		`SELECT level, stars, best_score, completed_at, updated_at
		 FROM level_progress WHERE level = ?`,
		level,
	).Scan(&p.Level, &p.Stars, &p.BestScore, &completedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelProgress{Level: level}, false, nil
	}
	if err != nil {
		return LevelProgress{}, false, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	p.CompletedAt = parseTime(completedAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, true, nil
}

// AllProgress returns the progress of every completed level, by level.
func (s *Store) AllProgress() (map[int]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT level, stars, best_score, completed_at, updated_at
		 FROM level_progress ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[int]LevelProgress)
	for rows.Next() {
		var p LevelProgress
		var completedAt, updatedAt any
		if err := rows.Scan(&p.Level, &p.Stars, &p.BestScore, &completedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CompletedAt = parseTime(completedAt)
		p.UpdatedAt = parseTime(updatedAt)
		out[p.Level] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CompletedLevels returns the completed level numbers in ascending order.
func (s *Store) CompletedLevels() ([]int, error) {
	rows, err := s.db.Query("SELECT level FROM level_progress ORDER BY level")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var l int
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// IsLevelUnlocked reports whether a level can be played: level 1 always,
// any other level once the previous one is completed.
func (s *Store) IsLevelUnlocked(level int) (bool, error) {
	if err := validLevel(level); err != nil {
		return false, err
	}
	if level == 1 {
		return true, nil
	}
	_, done, err := s.LevelProgress(level - 1)
	return done, err
}

// ResetProgression forgets every level completion.
func (s *Store) ResetProgression() error {
	if _, err := s.db.Exec("DELETE FROM level_progress"); err != nil {
		return fmt.Errorf("storage: cannot reset progression: %w", err)
	}
	return nil
}
