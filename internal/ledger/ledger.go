// Package ledger owns the ordered in-memory collection of expense records.
// All mutation goes through the Ledger type; persistence and presentation
// only ever see copies.
package ledger

import (
	"sort"

	"tally/internal/core"
)

// Ledger is the ordered sequence of all expense records. It is not safe for
// concurrent use; callers serialize access (the app state holds the lock).
type Ledger struct {
	entries []core.Expense
}

// New builds a ledger over the given records. The slice is copied.
func New(entries []core.Expense) *Ledger {
	l := &Ledger{entries: make([]core.Expense, len(entries))}
	copy(l.entries, entries)
	return l
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// NextID derives the next unused identifier: max existing id + 1, or 1 for
// an empty ledger. It never indexes into an empty slice.
func (l *Ledger) NextID() int64 {
	var max int64
	for _, e := range l.entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// Append assigns the next unused id to the record and adds it to the end of
// the ledger. The stored record (with id set) is returned.
func (l *Ledger) Append(e core.Expense) core.Expense {
	e.ID = l.NextID()
	l.entries = append(l.entries, e)
	return e
}

// Get returns the record with the given id.
func (l *Ledger) Get(id int64) (core.Expense, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// Update replaces the record with the same id in place, preserving order.
func (l *Ledger) Update(e core.Expense) bool {
	for i := range l.entries {
		if l.entries[i].ID == e.ID {
			l.entries[i] = e
			return true
		}
	}
	return false
}

// Remove rebuilds the ledger without the target id rather than splicing in
// place. Returns false if the id was not present.
func (l *Ledger) Remove(id int64) bool {
	kept := make([]core.Expense, 0, len(l.entries))
	found := false
	for _, e := range l.entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	return found
}

// Snapshot returns a copy of the current records. The recurrence sweep
// iterates over a snapshot so records appended mid-sweep are never
// re-evaluated in the same pass.
func (l *Ledger) Snapshot() []core.Expense {
	out := make([]core.Expense, len(l.entries))
	copy(out, l.entries)
	return out
}

// Month returns the records dated within the given calendar month.
func (l *Ledger) Month(year, month int) []core.Expense {
	var out []core.Expense
	for _, e := range l.entries {
		if e.Date.Year() == year && int(e.Date.Month()) == month {
			out = append(out, e)
		}
	}
	return out
}

// MonthOverview aggregates the month's spend per category, for charts.
// Categories are ordered by total, largest first.
func (l *Ledger) MonthOverview(year, month int) core.MonthOverview {
	overview := core.MonthOverview{Year: year, Month: month}

	totals := make(map[string]int64)
	for _, e := range l.Month(year, month) {
		totals[e.Category] += e.Amount.Cents
		overview.Total.Cents += e.Amount.Cents
	}

	for name, cents := range totals {
		overview.ByCategory = append(overview.ByCategory, core.CategoryAmount{
			Name:   name,
			Amount: core.Money{Cents: cents},
		})
	}
	sort.Slice(overview.ByCategory, func(i, j int) bool {
		a, b := overview.ByCategory[i], overview.ByCategory[j]
		if a.Amount.Cents != b.Amount.Cents {
			return a.Amount.Cents > b.Amount.Cents
		}
		return a.Name < b.Name
	})

	return overview
}
