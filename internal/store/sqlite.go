package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the slots in a single-row-per-slot table. SQLite gives
// the wholesale overwrite an atomic commit, which the plain file backend
// only approximates.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) read(ctx context.Context, slot string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM slots WHERE name = ?`, slot,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLiteStore) write(ctx context.Context, slot string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (name, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		slot, payload,
	)
	return err
}

func (s *SQLiteStore) LoadExpenses(ctx context.Context) ([]core.Expense, error) {
	return loadExpenses(ctx, s)
}

func (s *SQLiteStore) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	return saveExpenses(ctx, s, expenses)
}

func (s *SQLiteStore) LoadBudgets(ctx context.Context) (core.Budgets, error) {
	return loadBudgets(ctx, s)
}

func (s *SQLiteStore) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	return saveBudgets(ctx, s, budgets)
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
