package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/identity"
)

// OpenDB opens a SQLite database at the given path. If path is ":memory:",
// uses an in-memory database. Sets WAL mode and runs migrations.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scheduled_items (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		date       TEXT NOT NULL,
		content    TEXT NOT NULL,
		platform   TEXT NOT NULL DEFAULT 'All'
		           CHECK(platform IN ('All','Twitter','Instagram','LinkedIn')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scheduled_items_user_date
		ON scheduled_items(user_id, date)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// SQLiteItemStore implements ItemStore on a local SQLite database. It backs
// the single-user local mode and the test suite.
type SQLiteItemStore struct {
	db *sql.DB
}

// NewSQLiteItemStore creates a SQLiteItemStore over an opened database.
func NewSQLiteItemStore(db *sql.DB) *SQLiteItemStore {
	return &SQLiteItemStore{db: db}
}

func (s *SQLiteItemStore) SelectRange(ctx context.Context, ident identity.Identity, from, to domain.Day) ([]domain.ScheduledItem, error) {
	if !ident.SignedIn() {
		return nil, ErrUnauthorized
	}

	query := `SELECT id, user_id, date, content, platform, created_at
		FROM scheduled_items
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date, created_at, id`
	rows, err := s.db.QueryContext(ctx, query, ident.UserID, from.Key(), to.Key())
	if err != nil {
		return nil, fmt.Errorf("%w: selecting range: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var items []domain.ScheduledItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %v", ErrUnavailable, err)
	}
	return items, nil
}

func (s *SQLiteItemStore) Insert(ctx context.Context, ident identity.Identity, day domain.Day, content string, platform domain.Platform) (domain.ScheduledItem, error) {
	if err := validateInsert(ident, day, content, platform); err != nil {
		return domain.ScheduledItem{}, err
	}

	item := domain.ScheduledItem{
		ID:        uuid.NewString(),
		UserID:    ident.UserID,
		Day:       day,
		Content:   content,
		Platform:  platform,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO scheduled_items (id, user_id, date, content, platform, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.Day.Key(),
		item.Content,
		string(item.Platform),
		item.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return domain.ScheduledItem{}, fmt.Errorf("%w: inserting item: %v", ErrUnavailable, err)
	}
	return item, nil
}

func (s *SQLiteItemStore) Delete(ctx context.Context, ident identity.Identity, id string) error {
	if !ident.SignedIn() {
		return ErrUnauthorized
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM scheduled_items WHERE id = ? AND user_id = ?`,
		id, ident.UserID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting item: %v", ErrUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: reading delete result: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return fmt.Errorf("scheduled item %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanItem(rows *sql.Rows) (domain.ScheduledItem, error) {
	var item domain.ScheduledItem
	var dateStr, platformStr, createdAtStr string

	if err := rows.Scan(&item.ID, &item.UserID, &dateStr, &item.Content, &platformStr, &createdAtStr); err != nil {
		return domain.ScheduledItem{}, fmt.Errorf("scanning item row: %w", err)
	}

	day, err := domain.ParseDay(dateStr)
	if err != nil {
		return domain.ScheduledItem{}, fmt.Errorf("parsing item date: %w", err)
	}
	item.Day = day
	item.Platform = domain.Platform(platformStr)

	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return domain.ScheduledItem{}, fmt.Errorf("parsing created_at: %w", err)
	}
	item.CreatedAt = createdAt

	return item, nil
}
