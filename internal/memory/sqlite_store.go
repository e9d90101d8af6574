package memory

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
// Favorites, dislikes and history live in separate tables; a meta row marks
// the record as initialized so an emptied record is not replaced by defaults.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore connected to the given database path.
// The path should be a file path (e.g., "./memory.db") or ":memory:" for an in-memory database.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// InitSchema creates the necessary tables if they don't exist.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS preference_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS favorites (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS dislikes (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS meal_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			meal TEXT NOT NULL,
			chosen_on TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_history_chosen_on ON meal_history(chosen_on);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Load reads the record, or returns DefaultRecord if none was saved yet.
func (s *SQLiteStore) Load(ctx context.Context) (*Record, error) {
	var initialized string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preference_meta WHERE key = 'initialized'`).Scan(&initialized)
	if err == sql.ErrNoRows {
		return DefaultRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preference meta: %w", err)
	}

	r := &Record{}
	if r.Favorites, err = s.names(ctx, `SELECT name FROM favorites ORDER BY position`); err != nil {
		return nil, err
	}
	if r.Dislikes, err = s.names(ctx, `SELECT name FROM dislikes ORDER BY position`); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT meal, chosen_on FROM meal_history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Choice
		if err := rows.Scan(&c.Name, &c.Date); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		r.History = append(r.History, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	r.normalize()
	return r, nil
}

func (s *SQLiteStore) names(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating names: %w", err)
	}
	return names, nil
}

// Save rewrites all tables inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, r *Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM favorites`, `DELETE FROM dislikes`, `DELETE FROM meal_history`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear preferences: %w", err)
		}
	}

	for i, name := range r.Favorites {
		if _, err := tx.ExecContext(ctx, `INSERT INTO favorites (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("failed to save favorite %q: %w", name, err)
		}
	}
	for i, name := range r.Dislikes {
		if _, err := tx.ExecContext(ctx, `INSERT INTO dislikes (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("failed to save dislike %q: %w", name, err)
		}
	}
	for _, c := range r.History {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meal_history (meal, chosen_on) VALUES (?, ?)`, c.Name, c.Date); err != nil {
			return fmt.Errorf("failed to save history entry: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO preference_meta (key, value) VALUES ('initialized', '1')
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`); err != nil {
		return fmt.Errorf("failed to mark preferences initialized: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
