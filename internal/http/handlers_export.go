package http

import (
	"io"
	"net/http"

	"condoledger/internal/core"
	"condoledger/internal/export"
)

// Every filtered export applies the same query-parameter filter as the
// list views, so a download always matches what the list showed.

func (s *Server) filteredExpenses(w http.ResponseWriter, r *http.Request) (core.FilteredExpenses, []core.BankAccount, bool) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return core.FilteredExpenses{}, nil, false
	}
	l, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return core.FilteredExpenses{}, nil, false
	}
	return core.FilterExpenses(l.Expenses, l.Accounts, f), l.Accounts, true
}

func (s *Server) filteredIncomes(w http.ResponseWriter, r *http.Request) (core.FilteredIncomes, []core.BankAccount, bool) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return core.FilteredIncomes{}, nil, false
	}
	l, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return core.FilteredIncomes{}, nil, false
	}
	return core.FilterIncomes(l.Incomes, l.Accounts, f), l.Accounts, true
}

func (s *Server) handleExportExpensesCSV(w http.ResponseWriter, r *http.Request) {
	view, accounts, ok := s.filteredExpenses(w, r)
	if !ok {
		return
	}
	out, err := export.ExpensesCSV(view, accounts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="spese.csv"`)
	_, _ = w.Write(out)
}

func (s *Server) handleExportIncomesCSV(w http.ResponseWriter, r *http.Request) {
	view, accounts, ok := s.filteredIncomes(w, r)
	if !ok {
		return
	}
	out, err := export.IncomesCSV(view, accounts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entrate.csv"`)
	_, _ = w.Write(out)
}

func (s *Server) handleExportExpensesXML(w http.ResponseWriter, r *http.Request) {
	view, accounts, ok := s.filteredExpenses(w, r)
	if !ok {
		return
	}
	out, err := export.ExpensesXML(view, accounts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) handleExportIncomesXML(w http.ResponseWriter, r *http.Request) {
	view, accounts, ok := s.filteredIncomes(w, r)
	if !ok {
		return
	}
	out, err := export.IncomesXML(view, accounts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// The PDF endpoints return the layout-independent table contract; the
// client renders it.
func (s *Server) handleExportExpensesPDF(w http.ResponseWriter, r *http.Request) {
	view, accounts, ok := s.filteredExpenses(w, r)
	if !ok {
		return
	}
	table := export.ExpensesPDFTable(s.condoName, view, accounts, core.Today(s.now()))
	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleExportIncomesPDF(w http.ResponseWriter, r *http.Request) {
	view, accounts, ok := s.filteredIncomes(w, r)
	if !ok {
		return
	}
	table := export.IncomesPDFTable(s.condoName, view, accounts, core.Today(s.now()))
	writeJSON(w, http.StatusOK, table)
}

// handleBackup serves the full-ledger JSON envelope. Filters never apply
// here: a restore replaces everything, so the backup must hold everything.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	l, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := export.BackupJSON(s.condoName, l, core.Today(s.now()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	_, _ = w.Write(out)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	l, err := export.ParseBackup(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	if err := s.ledger.RestoreBackup(r.Context(), l); err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusOK, map[string]int{
		"expenses":     len(l.Expenses),
		"incomes":      len(l.Incomes),
		"bankAccounts": len(l.Accounts),
	})
}
