package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("15/01/2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Fatalf("unexpected encoding %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}

	var zero Date
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("zero date should encode as null, got %s", b)
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		freq Frequency
		want Date
	}{
		{"daily", NewDate(2024, 1, 1), Daily, NewDate(2024, 1, 2)},
		{"daily across month end", NewDate(2024, 1, 31), Daily, NewDate(2024, 2, 1)},
		{"weekly", NewDate(2024, 1, 1), Weekly, NewDate(2024, 1, 8)},
		{"weekly across year end", NewDate(2023, 12, 28), Weekly, NewDate(2024, 1, 4)},
		{"monthly", NewDate(2024, 3, 15), Monthly, NewDate(2024, 4, 15)},
		// AddDate normalizes the overflow instead of clamping; Jan 31 in a
		// leap year lands on Mar 2.
		{"monthly overflow leap year", NewDate(2024, 1, 31), Monthly, NewDate(2024, 3, 2)},
		{"monthly overflow non-leap", NewDate(2025, 1, 31), Monthly, NewDate(2025, 3, 3)},
		{"unknown frequency unchanged", NewDate(2024, 1, 1), Frequency("yearly"), NewDate(2024, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.in, tt.freq)
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence(%v, %s) = %v, want %v", tt.in, tt.freq, got, tt.want)
			}
		})
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{5000, "50.00"},
		{5, "0.05"},
		{-1250, "-12.50"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	catalog := DefaultCatalog()

	good := Expense{
		Name:        "lunch",
		Category:    "Food & Dining",
		Subcategory: "Restaurants",
		Payment:     "Cash",
		Date:        NewDate(2024, 1, 1),
		Amount:      Money{Cents: 1250},
	}
	if err := good.Validate(catalog); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	recurring := good
	recurring.Recurring = true
	recurring.Frequency = Weekly
	recurring.NextDate = NewDate(2024, 1, 8)
	if err := recurring.Validate(catalog); err != nil {
		t.Fatalf("expected ok for recurring, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Expense)
	}{
		{"empty name", func(e *Expense) { e.Name = "  " }},
		{"zero date", func(e *Expense) { e.Date = Date{} }},
		{"zero amount", func(e *Expense) { e.Amount = Money{} }},
		{"empty payment", func(e *Expense) { e.Payment = "" }},
		{"unknown category", func(e *Expense) { e.Category = "Yachts" }},
		{"subcategory of other category", func(e *Expense) { e.Subcategory = "Fuel" }},
		{"recurring without frequency", func(e *Expense) {
			e.Recurring = true
			e.NextDate = NewDate(2024, 1, 8)
		}},
		{"recurring without next date", func(e *Expense) {
			e.Recurring = true
			e.Frequency = Daily
		}},
		{"frequency on non-recurring", func(e *Expense) { e.Frequency = Daily }},
		{"next date on non-recurring", func(e *Expense) { e.NextDate = NewDate(2024, 1, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := good
			tt.mutate(&e)
			if err := e.Validate(catalog); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	if !catalog.Allowed("Food & Dining", "Groceries") {
		t.Fatalf("expected Groceries under Food & Dining")
	}
	if catalog.Allowed("Food & Dining", "Fuel") {
		t.Fatalf("Fuel must not be allowed under Food & Dining")
	}
	if catalog.Allowed("Nope", "Groceries") {
		t.Fatalf("unknown category must not be allowed")
	}
	if !catalog.Allowed(FallbackCategory, FallbackSubcategory) {
		t.Fatalf("the legacy fallback pair must be part of the catalog")
	}

	cats := catalog.Categories()
	if len(cats) == 0 || cats[0] != "Food & Dining" {
		t.Fatalf("expected ordered categories starting with Food & Dining, got %v", cats)
	}
	if subs := catalog.Subcategories("Travel"); len(subs) != 3 {
		t.Fatalf("unexpected Travel subcategories %v", subs)
	}
	if subs := catalog.Subcategories("Nope"); subs != nil {
		t.Fatalf("unknown category should yield nil, got %v", subs)
	}
}
