package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"condoledger/internal/core"
	"condoledger/internal/extract"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP statuses: validation failures are
// 422, missing records 404, refused duplicates 409, a dead extraction
// service 502. Anything else is a 500 with a generic body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrDuplicateRecord):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrMissingField),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidStatus):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case extract.IsServiceError(err):
		slog.ErrorContext(r.Context(), "Extraction service failure", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "extraction service unavailable"})
	default:
		slog.ErrorContext(r.Context(), "Internal error", "error", err, "url", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// parseFilter reads the list-view predicates from query parameters. Bad
// dates are reported instead of silently ignored so a filtered export can
// never quietly cover the wrong range.
func parseFilter(r *http.Request) (core.Filter, error) {
	q := r.URL.Query()
	f := core.Filter{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		AccountID: q.Get("accountId"),
	}

	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Filter{}, err
		}
		f.StartDate = d
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Filter{}, err
		}
		f.EndDate = d
	}
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		st := core.Status(v)
		if err := st.Validate(); err != nil {
			return core.Filter{}, err
		}
		f.Status = st
	}
	return f, nil
}

// yearParam reads the year query parameter, defaulting to the current year
// when absent. Like parseFilter, a malformed value is an error, never a
// silent substitute.
func (s *Server) yearParam(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" {
		return core.Today(s.now()).Year(), nil
	}
	y, err := strconv.Atoi(v)
	if err != nil || y <= 1900 || y >= 3000 {
		return 0, fmt.Errorf("invalid year %q", v)
	}
	return y, nil
}
