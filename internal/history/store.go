// Package history keeps a local record of snippets created and viewed from
// this machine, plus autosaved drafts, so the CLI stays useful offline.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action describes how a snippet entered the local history.
type Action string

const (
	ActionCreated Action = "created"
	ActionViewed  Action = "viewed"
	ActionDeleted Action = "deleted"
)

// Entry is one local history record.
type Entry struct {
	ID        string    `json:"id"`
	TressID   int       `json:"tress_id"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Action    Action    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft is an autosaved, not yet submitted snippet.
type Draft struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	IsPublic  bool      `json:"is_public"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store manages persistence of history entries and drafts.
type Store struct {
	db *DB
}

// NewStore creates a Store over the given database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Record appends a history entry.
func (s *Store) Record(ctx context.Context, tressID int, title, language string, action Action) (*Entry, error) {
	e := Entry{
		ID:        uuid.New().String(),
		TressID:   tressID,
		Title:     title,
		Language:  language,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history_entries (id, tress_id, title, language, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.TressID, e.Title, e.Language, e.Action, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting history entry: %w", err)
	}
	return &e, nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tress_id, title, language, action, created_at
		 FROM history_entries ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TressID, &e.Title, &e.Language, &e.Action, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveDraft inserts or updates a draft. An empty id creates a new draft.
func (s *Store) SaveDraft(ctx context.Context, d Draft) (*Draft, error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (id, title, content, language, is_public, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title, content = excluded.content,
		   language = excluded.language, is_public = excluded.is_public,
		   updated_at = excluded.updated_at`,
		d.ID, d.Title, d.Content, d.Language, d.IsPublic, d.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	return &d, nil
}

// LatestDraft returns the most recently updated draft, or nil when there is
// none.
func (s *Store) LatestDraft(ctx context.Context) (*Draft, error) {
	var d Draft
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, language, is_public, updated_at
		 FROM drafts ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&d.ID, &d.Title, &d.Content, &d.Language, &d.IsPublic, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest draft: %w", err)
	}
	return &d, nil
}

// DeleteDraft removes a draft once it has been submitted.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}
