package ledger

import "tally/internal/core"

// MigrateLegacy forward-migrates records persisted before the category field
// existed: a record with an empty category gets the catalog fallback pair.
// It runs once at load time, before any other logic sees the ledger, and
// returns the number of records it touched.
func MigrateLegacy(entries []core.Expense) int {
	migrated := 0
	for i := range entries {
		if entries[i].Category != "" {
			continue
		}
		entries[i].Category = core.FallbackCategory
		entries[i].Subcategory = core.FallbackSubcategory
		migrated++
	}
	return migrated
}
