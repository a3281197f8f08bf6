package http

import (
	"net/http"

	"condoledger/internal/core"
)

type expenseListResponse struct {
	Items         []core.Expense `json:"items"`
	TotalCents    int64          `json:"totalCents"`
	Total         string         `json:"total"`
	ActiveFilters int            `json:"activeFilters"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	l, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	view := core.FilterExpenses(l.Expenses, l.Accounts, f)
	writeJSON(w, http.StatusOK, expenseListResponse{
		Items:         orEmptyExpenses(view.Items),
		TotalCents:    view.Total.Cents,
		Total:         core.FormatDecimalComma(view.Total.Cents),
		ActiveFilters: f.ActiveCount(),
	})
}

type createExpenseRequest struct {
	core.Expense
	ConfirmDuplicate bool `json:"confirmDuplicate"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e, err := s.ledger.CreateExpense(r.Context(), req.Expense, req.ConfirmDuplicate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = r.PathValue("id")

	updated, err := s.ledger.UpdateExpense(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateExpense(w http.ResponseWriter, r *http.Request) {
	dup, err := s.ledger.DuplicateExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusCreated, dup)
}

func orEmptyExpenses(items []core.Expense) []core.Expense {
	if items == nil {
		return []core.Expense{}
	}
	return items
}
