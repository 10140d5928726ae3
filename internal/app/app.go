// Package app owns the in-memory application state: the ledger, the budget
// ceilings and the catalog. State is loaded once at startup and written back
// to the store wholesale after every mutation. All access is serialized
// through one mutex; the logical model is a single writer even though the
// HTTP layer serves concurrently.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/notify"
	"tally/internal/services"
	"tally/internal/store"
)

var ErrNotFound = errors.New("expense not found")

type App struct {
	mu      sync.Mutex
	catalog core.Catalog
	ledger  *ledger.Ledger
	budgets core.Budgets
	store   store.Store
	sweeper *services.Sweeper
}

// Load reads both state slots from the store and runs the one-time legacy
// migration before anything else sees the ledger. A migrated ledger is
// persisted immediately.
func Load(ctx context.Context, st store.Store, notifier notify.Notifier) (*App, error) {
	expenses, err := st.LoadExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	if migrated := ledger.MigrateLegacy(expenses); migrated > 0 {
		slog.InfoContext(ctx, "Migrated legacy expense records", "count", migrated)
		if err := st.SaveExpenses(ctx, expenses); err != nil {
			return nil, fmt.Errorf("persist migrated expenses: %w", err)
		}
	}

	budgets, err := st.LoadBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	return &App{
		catalog: core.DefaultCatalog(),
		ledger:  ledger.New(expenses),
		budgets: budgets,
		store:   st,
		sweeper: services.NewSweeper(notifier),
	}, nil
}

// RunStartupSweep materializes due recurring expenses and persists the
// grown ledger. Called exactly once per process start.
func (a *App) RunStartupSweep(ctx context.Context, today core.Date) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created, err := a.sweeper.Run(ctx, a.ledger, today)
	if err != nil {
		return 0, fmt.Errorf("recurrence sweep: %w", err)
	}
	if created == 0 {
		return 0, nil
	}
	if err := a.persistExpenses(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// AddExpense validates the record, appends it with a fresh id and persists
// the ledger. Invalid input is rejected before anything reaches the ledger.
func (a *App) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(a.catalog); err != nil {
		return core.Expense{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	stored := a.ledger.Append(e)
	if err := a.persistExpenses(ctx); err != nil {
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "Expense added",
		"id", stored.ID,
		"name", stored.Name,
		"category", stored.Category,
		"amount_cents", stored.Amount.Cents,
		"recurring", stored.Recurring)

	return stored, nil
}

// DeleteExpense removes the record and persists the rebuilt ledger.
func (a *App) DeleteExpense(ctx context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ledger.Remove(id) {
		return ErrNotFound
	}
	if err := a.persistExpenses(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// SetBudget configures the monthly ceiling for a category, overwriting any
// previous ceiling, and persists the budget map.
func (a *App) SetBudget(ctx context.Context, category string, ceiling core.Money) error {
	if err := ceiling.Validate(); err != nil {
		return err
	}
	if len(a.catalog.Subcategories(category)) == 0 {
		return fmt.Errorf("%w: %s", core.ErrUnknownCategory, category)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.budgets[category] = ceiling
	if err := a.store.SaveBudgets(ctx, a.budgets); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}

	slog.InfoContext(ctx, "Budget ceiling set",
		"category", category,
		"ceiling_cents", ceiling.Cents)

	return nil
}

// BudgetStatus derives the per-category status for the month containing at.
func (a *App) BudgetStatus(at time.Time) []core.BudgetStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return services.ComputeBudgetStatus(a.ledger.Snapshot(), a.budgets, at)
}

// Expenses returns a copy of the full ledger in insertion order.
func (a *App) Expenses() []core.Expense {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Snapshot()
}

// MonthExpenses returns the records dated within the given month.
func (a *App) MonthExpenses(year, month int) []core.Expense {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Month(year, month)
}

// MonthOverview aggregates the month's spend per category for charts.
func (a *App) MonthOverview(year, month int) core.MonthOverview {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.MonthOverview(year, month)
}

// Budgets returns a copy of the configured ceilings.
func (a *App) Budgets() core.Budgets {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(core.Budgets, len(a.budgets))
	for k, v := range a.budgets {
		out[k] = v
	}
	return out
}

// Catalog returns the read-only category catalog.
func (a *App) Catalog() core.Catalog {
	return a.catalog
}

// persistExpenses writes the whole ledger back to its slot. Callers hold the
// lock.
func (a *App) persistExpenses(ctx context.Context) error {
	if err := a.store.SaveExpenses(ctx, a.ledger.Snapshot()); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}
