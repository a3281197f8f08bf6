package http

import (
	"net/http"

	"condoledger/internal/core"
)

type incomeListResponse struct {
	Items         []core.Income `json:"items"`
	TotalCents    int64         `json:"totalCents"`
	Total         string        `json:"total"`
	ActiveFilters int           `json:"activeFilters"`
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
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

	view := core.FilterIncomes(l.Incomes, l.Accounts, f)
	items := view.Items
	if items == nil {
		items = []core.Income{}
	}
	writeJSON(w, http.StatusOK, incomeListResponse{
		Items:         items,
		TotalCents:    view.Total.Cents,
		Total:         core.FormatDecimalComma(view.Total.Cents),
		ActiveFilters: f.ActiveCount(),
	})
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var i core.Income
	if !decodeBody(w, r, &i) {
		return
	}

	created, err := s.ledger.CreateIncome(r.Context(), i)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	var i core.Income
	if !decodeBody(w, r, &i) {
		return
	}
	i.ID = r.PathValue("id")

	updated, err := s.ledger.UpdateIncome(r.Context(), i)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteIncome(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}
