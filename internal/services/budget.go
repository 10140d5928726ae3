package services

import (
	"sort"
	"time"

	"github.com/jinzhu/now"

	"tally/internal/core"
)

// ComputeBudgetStatus derives the per-category budget state for the calendar
// month containing at. Spend is summed for every category in the month, but
// only categories with a configured ceiling are reported; output is ordered
// by category name. Pure: neither the entries nor the budget map are
// mutated.
func ComputeBudgetStatus(entries []core.Expense, budgets core.Budgets, at time.Time) []core.BudgetStatus {
	month := now.New(at.UTC())
	start, end := month.BeginningOfMonth(), month.EndOfMonth()

	spent := make(map[string]int64)
	for _, e := range entries {
		if e.Date.Time.Before(start) || e.Date.Time.After(end) {
			continue
		}
		spent[e.Category] += e.Amount.Cents
	}

	statuses := make([]core.BudgetStatus, 0, len(budgets))
	for category, ceiling := range budgets {
		statuses = append(statuses, core.NewBudgetStatus(
			category,
			ceiling,
			core.Money{Cents: spent[category]},
		))
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Category < statuses[j].Category
	})

	return statuses
}
