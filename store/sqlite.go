package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

const createItemsTable = `CREATE TABLE IF NOT EXISTS items (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	id   INTEGER NOT NULL,
	name TEXT    NOT NULL
)`

// SQLiteStore keeps items in a SQLite file so they survive restarts.
// Insertion order is the autoincrement seq column.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at filePath.
func NewSQLiteStore(filePath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s, err := NewSQLiteStoreWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStoreWithDB prepares db for use as an item store.
func NewSQLiteStoreWithDB(db *sql.DB) (*SQLiteStore, error) {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("failed to run %q: %w", p, err)
		}
	}

	if _, err := db.Exec(createItemsTable); err != nil {
		return nil, fmt.Errorf("failed to create items table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append inserts item after every existing row.
func (s *SQLiteStore) Append(ctx context.Context, item Item) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO items (id, name) VALUES (?, ?)", item.ID, item.Name)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateFirst renames the earliest row with the given id.
func (s *SQLiteStore) UpdateFirst(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = ? WHERE seq = (SELECT seq FROM items WHERE id = ? ORDER BY seq LIMIT 1)",
		name, id)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update %d: %w", id, ErrNotFound)
	}
	return nil
}

// RemoveAll deletes every row with the given id.
func (s *SQLiteStore) RemoveAll(ctx context.Context, id int64) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	return int(n), nil
}

// Snapshot reads all rows in insertion order.
func (s *SQLiteStore) Snapshot(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM items ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return items, nil
}

// MaxID returns the largest id stored, 0 for an empty table.
func (s *SQLiteStore) MaxID(ctx context.Context) (int64, error) {
	var max sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(id) FROM items").Scan(&max); err != nil {
		return 0, fmt.Errorf("query max id: %w", err)
	}
	return max.Int64, nil
}

// Count returns the number of stored rows.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var c int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&c); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return c, nil
}

// Ping checks if the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
