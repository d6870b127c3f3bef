package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteJournal is a SQLite implementation of the sorting Journal interface.
type SqliteJournal struct {
	db *sql.DB
}

// NewSqliteJournal opens (or creates) the journal database at path.
func NewSqliteJournal(path string) (*SqliteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time, sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteJournal{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			record_id TEXT NOT NULL,
			action TEXT NOT NULL,
			source TEXT NOT NULL,
			destination TEXT NOT NULL,
			category TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_journal_created_at ON journal(created_at);
		CREATE INDEX IF NOT EXISTS idx_journal_record_id ON journal(record_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Append writes an entry. Missing ids and timestamps are filled in.
func (d *SqliteJournal) Append(ctx context.Context, entry sorting.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO journal (id, record_id, action, source, destination, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.RecordID, string(entry.Action), entry.Source, entry.Destination, entry.Category,
		entry.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// List returns the latest entries, newest first.
func (d *SqliteJournal) List(ctx context.Context, limit int) ([]sorting.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, record_id, action, source, destination, category, created_at
		FROM journal
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []sorting.JournalEntry
	for rows.Next() {
		var entry sorting.JournalEntry
		var action, createdAt string
		var category sql.NullString
		if err := rows.Scan(&entry.ID, &entry.RecordID, &action, &entry.Source, &entry.Destination, &category, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Action = sorting.JournalAction(action)
		entry.Category = category.String
		entry.At, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (d *SqliteJournal) Close() error {
	return d.db.Close()
}
