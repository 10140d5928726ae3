package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/app"
	"tally/internal/core"
	"tally/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	application, err := app.Load(context.Background(), st, nil)
	require.NoError(t, err)

	return NewServer("0", application)
}

func doJSON(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Categories)
	assert.Equal(t, "Food & Dining", resp.Categories[0].Name)
	assert.Contains(t, resp.PaymentMethods, "Cash")
}

func TestCreateListDeleteExpense(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/expenses", map[string]any{
		"name":        "lunch",
		"category":    "Food & Dining",
		"subcategory": "Restaurants",
		"payment":     "Cash",
		"date":        "2024-01-10",
		"amountCents": 1250,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created core.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	rec = doJSON(t, s, http.MethodGet, "/api/expenses?year=2024&month=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []core.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = doJSON(t, s, http.MethodGet, "/api/expenses?year=2023&month=12", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	rec = doJSON(t, s, http.MethodDelete, "/api/expenses/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/expenses/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateExpenseValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty name", map[string]any{
			"name": "", "category": "Food & Dining", "subcategory": "Restaurants",
			"payment": "Cash", "date": "2024-01-10", "amountCents": 100,
		}},
		{"zero amount", map[string]any{
			"name": "x", "category": "Food & Dining", "subcategory": "Restaurants",
			"payment": "Cash", "date": "2024-01-10", "amountCents": 0,
		}},
		{"unknown category", map[string]any{
			"name": "x", "category": "Yachts", "subcategory": "Big",
			"payment": "Cash", "date": "2024-01-10", "amountCents": 100,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/expenses", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	// Nothing reached the ledger.
	rec := doJSON(t, s, http.MethodGet, "/api/expenses", nil)
	var listed []core.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestBudgetEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPut, "/api/budgets/Food%20%26%20Dining", setBudgetRequest{CeilingCents: 10000})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodPut, "/api/budgets/Food%20%26%20Dining", setBudgetRequest{CeilingCents: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/budgets/Yachts", setBudgetRequest{CeilingCents: 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/budgets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var statuses []core.BudgetStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "Food & Dining", statuses[0].Category)
	assert.Equal(t, core.LevelNormal, statuses[0].Level)
}

func TestSummaryEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/expenses", map[string]any{
		"name": "fuel", "category": "Transportation", "subcategory": "Fuel",
		"payment": "Credit Card", "date": "2024-01-12", "amountCents": 3000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, "/api/summary?year=2024&month=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var overview core.MonthOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, int64(3000), overview.Total.Cents)
	require.Len(t, overview.ByCategory, 1)
	assert.Equal(t, "Transportation", overview.ByCategory[0].Name)

	rec = doJSON(t, s, http.MethodGet, "/api/summary?year=2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
