package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxEvents is how many telemetry events are kept; older ones are dropped.
const MaxEvents = 1000

// Event is one local telemetry record.
type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Props     map[string]any `json:"props,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// TrackEvent appends an event and trims the log to MaxEvents.
func (s *Store) TrackEvent(name string, props map[string]any) (Event, error) {
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return Event{}, fmt.Errorf("storage: cannot encode event props: %w", err)
	}

	e := Event{ID: uuid.NewString(), Name: name, Props: props, Timestamp: time.Now().UTC()}
	tx, err := s.db.Begin()
	if err != nil {
		return Event{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(
		"INSERT INTO telemetry_events (id, name, props, created_at) VALUES (?, ?, ?, ?)",
		e.ID, e.Name, string(raw), e.Timestamp,
	); err != nil {
		return Event{}, fmt.Errorf("storage: cannot save event: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM telemetry_events WHERE seq NOT IN
		 (SELECT seq FROM telemetry_events ORDER BY seq DESC LIMIT ?)`,
		MaxEvents,
	); err != nil {
		return Event{}, fmt.Errorf("storage: cannot trim events: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Event{}, fmt.Errorf("storage: cannot commit event: %w", err)
	}
	return e, nil
}

// Events returns up to limit events, oldest first. limit <= 0 returns all.
func (s *Store) Events(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = MaxEvents
	}
	rows, err := s.db.Query(
		`SELECT id, name, props, created_at FROM
		 (SELECT seq, id, name, props, created_at FROM telemetry_events ORDER BY seq DESC LIMIT ?)
		 ORDER BY seq ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var raw string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &raw, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &e.Props); err != nil {
			return nil, fmt.Errorf("storage: cannot decode event %s: %w", e.ID, err)
		}
		e.Timestamp = parseTime(createdAt)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return events, nil
}

// EventCount returns the number of stored events.
func (s *Store) EventCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM telemetry_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count events: %w", err)
	}
	return n, nil
}

// ClearEvents deletes the telemetry log.
func (s *Store) ClearEvents() error {
	if _, err := s.db.Exec("DELETE FROM telemetry_events"); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	return nil
}

// ExportEvents returns every stored event as an indented JSON array.
func (s *Store) ExportEvents() ([]byte, error) {
	events, err := s.Events(0)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	out, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode events: %w", err)
	}
	return out, nil
}
