package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Recording describes one exported drum beat.
type Recording struct {
	ID         string // uuid
	Name       string // human readable, e.g. "brave-otter"
	Path       string // absolute path of the WAV file
	Events     int
	DurationMS int64
	Pads       string // pad keys in hit order, e.g. "kjkl"
	Owner      string // ssh user, empty for local play
	CreatedAt  time.Time
}

// SaveRecording indexes an exported beat.
func (s *Store) SaveRecording(r Recording) error {
	_, err := s.db.Exec(
		`INSERT INTO recordings (id, name, path, events, duration_ms, pads, owner)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Path, r.Events, r.DurationMS, r.Pads, r.Owner,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save recording: %w", err)
	}
	return nil
}

// Recordings lists the most recent beats, newest first.
func (s *Store) Recordings(limit int) ([]Recording, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, path, events, duration_ms, pads, owner, created_at
		 FROM recordings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var out []Recording
	for rows.Next() {
		var r Recording
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Name, &r.Path, &r.Events, &r.DurationMS, &r.Pads, &r.Owner, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RecordingByID returns a single recording, or nil if it does not exist.
func (s *Store) RecordingByID(id string) (*Recording, error) {
	var r Recording
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, name, path, events, duration_ms, pads, owner, created_at
		 FROM recordings WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Name, &r.Path, &r.Events, &r.DurationMS, &r.Pads, &r.Owner, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// DeleteRecording removes a recording from the index. The WAV file is left
// on disk.
func (s *Store) DeleteRecording(id string) error {
	if _, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	return nil
}
