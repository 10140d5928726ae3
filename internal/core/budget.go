package core

const (
	LevelNormal  BudgetLevel = "normal"
	LevelWarning BudgetLevel = "warning"
	LevelDanger  BudgetLevel = "danger"
)

// Thresholds for budget status classification, in percent of the ceiling.
const (
	warningThreshold = 75.0
	dangerThreshold  = 90.0
)

type (
	// BudgetLevel classifies how close spend is to a ceiling.
	BudgetLevel string

	// Budgets maps a category to its configured monthly ceiling. One
	// ceiling per category; setting again overwrites.
	Budgets map[string]Money

	// BudgetStatus is the derived state of one category's budget for a
	// month: how much was spent against the ceiling and the alert level.
	BudgetStatus struct {
		Category   string      `json:"category"`
		Ceiling    Money       `json:"ceilingCents"`
		Spent      Money       `json:"spentCents"`
		Remaining  Money       `json:"remainingCents"`
		Percentage float64     `json:"percentage"`
		Level      BudgetLevel `json:"level"`
	}
)

// NewBudgetStatus derives the status for one category. Remaining may go
// negative. Percentage is clamped to 100. A zero ceiling is not a legal
// configuration; it is reported as fully exhausted rather than dividing by
// zero.
func NewBudgetStatus(category string, ceiling, spent Money) BudgetStatus {
	s := BudgetStatus{
		Category:  category,
		Ceiling:   ceiling,
		Spent:     spent,
		Remaining: Money{Cents: ceiling.Cents - spent.Cents},
	}
	if ceiling.Cents <= 0 {
		s.Percentage = 100
		s.Level = LevelDanger
		return s
	}
	s.Percentage = float64(spent.Cents) * 100 / float64(ceiling.Cents)
	if s.Percentage > 100 {
		s.Percentage = 100
	}
	switch {
	case s.Percentage >= dangerThreshold:
		s.Level = LevelDanger
	case s.Percentage >= warningThreshold:
		s.Level = LevelWarning
	default:
		s.Level = LevelNormal
	}
	return s
}
