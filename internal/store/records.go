package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes masked passwords from plain notes.
type Kind string

const (
	KindPassword Kind = "password"
	KindNote     Kind = "note"
)

// ParseKind maps free text onto a Kind, defaulting to password.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindNote)) {
		return KindNote
	}
	return KindPassword
}

// Sensitive reports whether content of this kind is masked by default.
func (k Kind) Sensitive() bool { return k == KindPassword }

// Record is a vault entry.
type Record struct {
	ID        string
	Kind      Kind
	Title     string
	Content   string
	CreatedAt time.Time
}

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// RecordRepo handles vault records.
type RecordRepo struct {
	db *sql.DB
}

func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{db: db} }

// SeedRecords are the entries every fresh session starts with.
func SeedRecords(now time.Time) []Record {
	return []Record{
		{ID: "1", Kind: KindPassword, Title: "Work Email", Content: "SuperSecretPassword123", CreatedAt: now},
		{ID: "2", Kind: KindNote, Title: "Project Ideas", Content: "Build a decentralized identity manager.", CreatedAt: now},
		{ID: "3", Kind: KindPassword, Title: "Social Media", Content: "AnotherStrongPass!@#", CreatedAt: now},
	}
}

// Seed inserts the seed records when the table is empty. It is idempotent.
func (r *RecordRepo) Seed(ctx context.Context) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(r.db, func(tx *sql.Tx) error {
		for _, rec := range SeedRecords(Now()) {
			if err := insert(ctx, tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Add stores a new record and returns it with a fresh id.
func (r *RecordRepo) Add(ctx context.Context, kind Kind, title, content string) (Record, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: Now(),
	}
	if err := insert(ctx, r.db, rec); err != nil {
		return Record{}, fmt.Errorf("add record: %w", err)
	}
	return rec, nil
}

// Delete removes the record with id. Deleting an unknown id returns ErrNotFound.
func (r *RecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns records in insertion order.
func (r *RecordRepo) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, title, content, created_at FROM records ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func insert(ctx context.Context, db execer, rec Record) error {
	_, err := db.ExecContext(ctx, `
	INSERT INTO records(id, kind, title, content, created_at) VALUES (?, ?, ?, ?, ?);
	`, rec.ID, string(rec.Kind), rec.Title, rec.Content, rec.CreatedAt)
	return err
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	var kind string
	if err := s.Scan(&rec.ID, &kind, &rec.Title, &rec.Content, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	rec.Kind = Kind(kind)
	return rec, nil
}
