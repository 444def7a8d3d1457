package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one recorded form creation.
type Entry struct {
	ID            int64     `json:"id"`
	FormID        string    `json:"form_id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
	EditURL       string    `json:"edit_url"`
	ViewURL       string    `json:"view_url"`
	Source        string    `json:"source,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record appends one entry. CreatedAt defaults to now when zero.
func (s *Store) Record(ctx context.Context, e Entry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO form_history
		(form_id, title, question_count, edit_url, view_url, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.FormID, e.Title, e.QuestionCount, e.EditURL, e.ViewURL, e.Source, created.Unix())
	if err != nil {
		return fmt.Errorf("record form: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, form_id, title, question_count,
		edit_url, view_url, source, created_at
		FROM form_history ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.FormID, &e.Title, &e.QuestionCount,
			&e.EditURL, &e.ViewURL, &e.Source, &created); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}
