package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

const dateLayout = "2006-01-02"

type (
	// Frequency is the cadence of a recurring expense.
	Frequency string

	// Date is a calendar day with no time component. The zero value means
	// "no date", which is how non-recurring expenses carry their NextDate.
	Date struct {
		time.Time
	}

	// Money is an amount in integer cents.
	Money struct {
		Cents int64
	}

	// Expense is one ledger entry. Frequency and NextDate are set if and
	// only if Recurring is true.
	Expense struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		Category    string    `json:"category"`
		Subcategory string    `json:"subcategory"`
		Payment     string    `json:"payment"`
		Date        Date      `json:"date"`
		Amount      Money     `json:"amountCents"`
		Recurring   bool      `json:"recurring"`
		Frequency   Frequency `json:"frequency,omitempty"`
		NextDate    Date      `json:"nextDate,omitempty"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyPayment     = errors.New("empty payment method")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrMissingNextDate  = errors.New("recurring expense without next date")
	ErrNameTooLong      = errors.New("name too long (max 200 characters)")
	ErrStrayRecurrence  = errors.New("frequency and next date are only valid on recurring expenses")
)

// NewDate builds a Date pinned to midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// DateOf truncates an instant to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the date as "2006-01-02", or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON encodes the amount as a bare number of cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Cents)
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.Cents)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// String renders the amount as a decimal, e.g. "12.50".
func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// NextOccurrence advances a date by one frequency step. Monthly uses the
// standard library's month normalization, so Jan 31 advances to Mar 2/3
// rather than clamping to Feb 28. An unknown frequency returns the input
// unchanged.
func NextOccurrence(d Date, f Frequency) Date {
	switch f {
	case Daily:
		return Date{Time: d.AddDate(0, 0, 1)}
	case Weekly:
		return Date{Time: d.AddDate(0, 0, 7)}
	case Monthly:
		return Date{Time: d.AddDate(0, 1, 0)}
	default:
		return d
	}
}

// Validate checks an expense against the catalog before it may reach the
// ledger. It does not check the ID; the ledger assigns those.
func (e Expense) Validate(catalog Catalog) error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return ErrNameTooLong
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Payment) == "" {
		return ErrEmptyPayment
	}
	if !catalog.Allowed(e.Category, e.Subcategory) {
		return fmt.Errorf("%w: %s / %s", ErrUnknownCategory, e.Category, e.Subcategory)
	}
	if e.Recurring {
		if !e.Frequency.Valid() {
			return ErrInvalidFrequency
		}
		if e.NextDate.IsZero() {
			return ErrMissingNextDate
		}
	} else {
		if e.Frequency != "" || !e.NextDate.IsZero() {
			return ErrStrayRecurrence
		}
	}
	return nil
}
