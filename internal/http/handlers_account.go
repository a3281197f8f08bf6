package http

import (
	"net/http"

	"condoledger/internal/core"
)

type accountView struct {
	core.BankAccount
	BalanceCents int64  `json:"balanceCents"`
	Balance      string `json:"balance"`
}

// handleListAccounts returns every account with its running balance. The
// balance ignores list filters: it is always initial balance plus all
// attributed movements.
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	l, err := s.ledger.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]accountView, 0, len(l.Accounts))
	for _, a := range l.Accounts {
		balance := core.AccountBalance(a, l.Expenses, l.Incomes)
		views = append(views, accountView{
			BankAccount:  a,
			BalanceCents: balance,
			Balance:      core.FormatDecimalComma(balance),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var a core.BankAccount
	if !decodeBody(w, r, &a) {
		return
	}

	created, err := s.ledger.CreateAccount(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var a core.BankAccount
	if !decodeBody(w, r, &a) {
		return
	}
	a.ID = r.PathValue("id")

	updated, err := s.ledger.UpdateAccount(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}
