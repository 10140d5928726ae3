package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tally/internal/core"
)

type catalogResponse struct {
	Categories     []catalogCategory `json:"categories"`
	PaymentMethods []string          `json:"paymentMethods"`
}

type catalogCategory struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	catalog := s.app.Catalog()
	resp := catalogResponse{PaymentMethods: core.PaymentMethods}
	for _, name := range catalog.Categories() {
		resp.Categories = append(resp.Categories, catalogCategory{
			Name:          name,
			Subcategories: catalog.Subcategories(name),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListExpenses returns the whole ledger, or one month of it when both
// year and month query parameters are present.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, scoped, err := parseMonthQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var expenses []core.Expense
	if scoped {
		expenses = s.app.MonthExpenses(year, month)
	} else {
		expenses = s.app.Expenses()
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return
	}
	e.ID = 0 // the ledger assigns identifiers

	stored, err := s.app.AddExpense(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid expense id"})
		return
	}

	if err := s.app.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleSummary returns the per-category totals the charts consume.
// Defaults to the current month.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month, scoped, err := parseMonthQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if !scoped {
		n := time.Now().UTC()
		year, month = n.Year(), int(n.Month())
	}
	writeJSON(w, http.StatusOK, s.app.MonthOverview(year, month))
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, _ *http.Request) {
	statuses := s.app.BudgetStatus(time.Now().UTC())
	if statuses == nil {
		statuses = []core.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, statuses)
}

type setBudgetRequest struct {
	CeilingCents int64 `json:"ceilingCents"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return
	}

	if err := s.app.SetBudget(r.Context(), category, core.Money{Cents: req.CeilingCents}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// parseMonthQuery reads optional year/month query parameters. Both must be
// given together.
func parseMonthQuery(r *http.Request) (year, month int, scoped bool, err error) {
	q := r.URL.Query()
	yearStr, monthStr := q.Get("year"), q.Get("month")
	if yearStr == "" && monthStr == "" {
		return 0, 0, false, nil
	}
	if yearStr == "" || monthStr == "" {
		return 0, 0, false, fmt.Errorf("year and month must be provided together")
	}

	year, err = strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid year %q", yearStr)
	}
	month, err = strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false, fmt.Errorf("invalid month %q", monthStr)
	}
	return year, month, true, nil
}
