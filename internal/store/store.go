// Package store persists the application state as two named slots of a
// key-value store: "expenses" holds the JSON-encoded ledger and "budgets"
// the JSON-encoded category ceilings. Every save is a full overwrite of its
// slot; there is no partial or incremental persistence.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"tally/internal/core"
)

const (
	SlotExpenses = "expenses"
	SlotBudgets  = "budgets"
)

// Store reads and writes the two state slots. A missing slot reads as empty
// state, not as an error; that is the first-run case.
type Store interface {
	LoadExpenses(ctx context.Context) ([]core.Expense, error)
	SaveExpenses(ctx context.Context, expenses []core.Expense) error
	LoadBudgets(ctx context.Context) (core.Budgets, error)
	SaveBudgets(ctx context.Context, budgets core.Budgets) error
	Close() error
}

// slotStore is the raw slot access both backends implement; the typed
// Load/Save methods are layered on top of it.
type slotStore interface {
	read(ctx context.Context, slot string) ([]byte, bool, error)
	write(ctx context.Context, slot string, payload []byte) error
}

func loadExpenses(ctx context.Context, s slotStore) ([]core.Expense, error) {
	raw, ok, err := s.read(ctx, SlotExpenses)
	if err != nil {
		return nil, fmt.Errorf("read %s slot: %w", SlotExpenses, err)
	}
	if !ok {
		return nil, nil
	}
	var expenses []core.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		return nil, fmt.Errorf("decode %s slot: %w", SlotExpenses, err)
	}
	return expenses, nil
}

func saveExpenses(ctx context.Context, s slotStore, expenses []core.Expense) error {
	if expenses == nil {
		expenses = []core.Expense{}
	}
	raw, err := json.Marshal(expenses)
	if err != nil {
		return fmt.Errorf("encode %s slot: %w", SlotExpenses, err)
	}
	if err := s.write(ctx, SlotExpenses, raw); err != nil {
		return fmt.Errorf("write %s slot: %w", SlotExpenses, err)
	}
	return nil
}

func loadBudgets(ctx context.Context, s slotStore) (core.Budgets, error) {
	raw, ok, err := s.read(ctx, SlotBudgets)
	if err != nil {
		return nil, fmt.Errorf("read %s slot: %w", SlotBudgets, err)
	}
	if !ok {
		return core.Budgets{}, nil
	}
	var budgets core.Budgets
	if err := json.Unmarshal(raw, &budgets); err != nil {
		return nil, fmt.Errorf("decode %s slot: %w", SlotBudgets, err)
	}
	if budgets == nil {
		budgets = core.Budgets{}
	}
	return budgets, nil
}

func saveBudgets(ctx context.Context, s slotStore, budgets core.Budgets) error {
	if budgets == nil {
		budgets = core.Budgets{}
	}
	raw, err := json.Marshal(budgets)
	if err != nil {
		return fmt.Errorf("encode %s slot: %w", SlotBudgets, err)
	}
	if err := s.write(ctx, SlotBudgets, raw); err != nil {
		return fmt.Errorf("write %s slot: %w", SlotBudgets, err)
	}
	return nil
}
