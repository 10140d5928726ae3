package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amountCents"`
}

// MonthOverview is a compact summary for a specific year+month, consumed by
// the chart-rendering presentation layer.
type MonthOverview struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"` // 1-12
	Total      Money            `json:"totalCents"`
	ByCategory []CategoryAmount `json:"byCategory"`
}
