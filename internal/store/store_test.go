package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func TestFileStoreFirstRunIsEmpty(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	expenses, err := s.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	budgets, err := s.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.NotNil(t, budgets)
	assert.Empty(t, budgets)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	expenses := []core.Expense{
		{
			ID:          1,
			Name:        "rent",
			Category:    "Housing & Utilities",
			Subcategory: "Rent",
			Payment:     "Bank Transfer",
			Date:        core.NewDate(2024, 1, 1),
			Amount:      core.Money{Cents: 120000},
			Recurring:   true,
			Frequency:   core.Monthly,
			NextDate:    core.NewDate(2024, 2, 1),
		},
		{
			ID:          2,
			Name:        "coffee",
			Category:    "Food & Dining",
			Subcategory: "Coffee & Snacks",
			Payment:     "Cash",
			Date:        core.NewDate(2024, 1, 3),
			Amount:      core.Money{Cents: 350},
		},
	}
	budgets := core.Budgets{
		"Food & Dining": {Cents: 40000},
	}

	require.NoError(t, s.SaveExpenses(ctx, expenses))
	require.NoError(t, s.SaveBudgets(ctx, budgets))

	// A fresh store over the same directory sees the persisted state.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	gotExpenses, err := reopened.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, expenses, gotExpenses)

	gotBudgets, err := reopened.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, budgets, gotBudgets)
}

func TestFileStoreSaveOverwritesWholesale(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	first := []core.Expense{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, s.SaveExpenses(ctx, first))

	second := []core.Expense{{ID: 3, Name: "c"}}
	require.NoError(t, s.SaveExpenses(ctx, second))

	got, err := s.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got, "a save replaces the slot, it never appends")
}

func TestOpenFactory(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Config{Type: FileBackend, DataDirectory: dir}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(Config{Type: "redis"}, nil)
	assert.Error(t, err)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	expenses, err := s.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	want := []core.Expense{{
		ID:          1,
		Name:        "gym",
		Category:    "Health",
		Subcategory: "Fitness",
		Payment:     "Credit Card",
		Date:        core.NewDate(2024, 2, 10),
		Amount:      core.Money{Cents: 2999},
	}}
	require.NoError(t, s.SaveExpenses(ctx, want))

	got, err := s.LoadExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	budgets := core.Budgets{"Health": {Cents: 10000}}
	require.NoError(t, s.SaveBudgets(ctx, budgets))

	gotBudgets, err := s.LoadBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, budgets, gotBudgets)
}
