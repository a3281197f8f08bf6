package http

import (
	"net/http"
	"strconv"

	"condoledger/internal/core"
)

type dashboardResponse struct {
	Year     int                   `json:"year"`
	Mode     string                `json:"mode"`
	Summary  core.YearSummary      `json:"summary"`
	ByMonth  []core.MonthGroup     `json:"byMonth,omitempty"`
	ByCat    []core.CategoryGroup  `json:"byCategory,omitempty"`
	Overdue  []core.OverdueExpense `json:"overdue"`
	Balances []accountView         `json:"accountBalances"`
}

// handleDashboard returns the year's aggregates: summary totals, the
// selected rollup, overdue expenses, and account balances. Responses are
// cached per year and mode until the next mutation.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, err := s.yearParam(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode != "category" {
		mode = "month"
	}

	key := strconv.Itoa(year) + "-" + mode
	if cached, found := s.dashboardCache.Get(key); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	l, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	today := core.Today(s.now())
	resp := dashboardResponse{
		Year:    year,
		Mode:    mode,
		Summary: core.SummarizeYear(l.Expenses, l.Incomes, year),
		Overdue: core.OverdueExpenses(l.Expenses, today),
	}
	if resp.Overdue == nil {
		resp.Overdue = []core.OverdueExpense{}
	}

	switch mode {
	case "category":
		resp.ByCat = core.GroupExpensesByCategory(l.Expenses, year)
	default:
		resp.ByMonth = core.GroupExpensesByMonth(l.Expenses, year)
	}

	resp.Balances = make([]accountView, 0, len(l.Accounts))
	for _, a := range l.Accounts {
		balance := core.AccountBalance(a, l.Expenses, l.Incomes)
		resp.Balances = append(resp.Balances, accountView{
			BankAccount:  a,
			BalanceCents: balance,
			Balance:      core.FormatDecimalComma(balance),
		})
	}

	s.dashboardCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}
