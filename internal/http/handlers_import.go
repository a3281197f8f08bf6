package http

import (
	"net/http"

	"condoledger/internal/core"
	"condoledger/internal/extract"
)

type importExtractResponse struct {
	Candidates []core.ReviewedCandidate `json:"candidates"`
	Report     core.BatchReport         `json:"report"`
}

// handleImportExtract runs phase one of the import: documents go to the
// extraction service, candidates come back validated and duplicate-flagged
// for review. Nothing is written yet.
func (s *Server) handleImportExtract(w http.ResponseWriter, r *http.Request) {
	var req extract.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" && len(req.Attachments) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "nothing to extract"})
		return
	}

	reviewed, report, err := s.importer.ExtractCandidates(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if reviewed == nil {
		reviewed = []core.ReviewedCandidate{}
	}
	writeJSON(w, http.StatusOK, importExtractResponse{Candidates: reviewed, Report: report})
}

type importCommitRequest struct {
	Candidates []core.ReviewedCandidate `json:"candidates"`
}

// handleImportCommit runs phase two: the reviewer-approved batch is
// appended to the ledger with fresh ids.
func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	var req importCommitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	n, err := s.importer.CommitReviewed(r.Context(), req.Candidates)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.dashboardCache.Clear()
	writeJSON(w, http.StatusCreated, map[string]int{"committed": n})
}
