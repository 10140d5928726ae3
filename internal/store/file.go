package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/core"
)

// FileStore keeps each slot as one JSON file under a data directory. It
// mirrors browser local storage: read once at startup, rewritten wholesale
// after every mutation.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(slot string) string {
	return filepath.Join(f.dir, slot+".json")
}

func (f *FileStore) read(_ context.Context, slot string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(slot))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (f *FileStore) write(_ context.Context, slot string, payload []byte) error {
	// Write-then-rename so a crash mid-write never leaves a torn slot.
	tmp := f.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(slot))
}

func (f *FileStore) LoadExpenses(ctx context.Context) ([]core.Expense, error) {
	return loadExpenses(ctx, f)
}

func (f *FileStore) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	return saveExpenses(ctx, f, expenses)
}

func (f *FileStore) LoadBudgets(ctx context.Context) (core.Budgets, error) {
	return loadBudgets(ctx, f)
}

func (f *FileStore) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	return saveBudgets(ctx, f, budgets)
}

func (f *FileStore) Close() error {
	return nil
}
