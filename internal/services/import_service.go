package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"condoledger/internal/amqp"
	"condoledger/internal/core"
	"condoledger/internal/extract"

	"github.com/google/uuid"
)

// Extractor is the boundary to the document extraction service.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) ([]core.Candidate, error)
}

// ImportService drives the two-phase import: extract candidates for human
// review, then commit the reviewed batch.
type ImportService struct {
	condo     string
	repo      Repository
	extractor Extractor
	publisher Publisher
	newID     func() string
	now       func() time.Time
}

func NewImportService(condo string, repo Repository, extractor Extractor, publisher Publisher) *ImportService {
	return &ImportService{
		condo:     condo,
		repo:      repo,
		extractor: extractor,
		publisher: publisher,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// ExtractCandidates sends the documents to the extraction service, then
// validates the raw candidates against the current ledger. Invalid
// candidates are dropped with a count in the report; duplicates stay in the
// batch, flagged for the reviewer.
func (s *ImportService) ExtractCandidates(ctx context.Context, req extract.Request) ([]core.ReviewedCandidate, core.BatchReport, error) {
	if s.extractor == nil {
		return nil, core.BatchReport{}, &extract.ServiceError{Err: errors.New("extraction service not configured")}
	}

	candidates, err := s.extractor.Extract(ctx, req)
	if err != nil {
		return nil, core.BatchReport{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return nil, core.BatchReport{}, fmt.Errorf("load ledger: %w", err)
	}

	reviewed, report := core.ReviewBatch(l.Expenses, candidates, core.Today(s.now()))
	return reviewed, report, nil
}

// CommitReviewed appends the reviewed batch to the expense collection,
// assigning fresh ids. Returns the number of committed records.
func (s *ImportService) CommitReviewed(ctx context.Context, reviewed []core.ReviewedCandidate) (int, error) {
	for _, r := range reviewed {
		if err := r.Expense.Validate(); err != nil {
			return 0, err
		}
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}

	committed := core.CommitCandidates(reviewed, s.newID)
	l.Expenses = append(l.Expenses, committed...)
	if err := s.repo.SaveExpenses(ctx, s.condo, l.Expenses); err != nil {
		return 0, fmt.Errorf("save expenses: %w", err)
	}

	if s.publisher != nil {
		// Same policy as manual mutations: the commit stands even when the
		// notification fails.
		if err := s.publisher.PublishLedgerChanged(ctx, s.condo, amqp.CollectionExpenses); err != nil {
			slog.ErrorContext(ctx, "Failed to publish change notification",
				"collection", amqp.CollectionExpenses, "error", err)
		}
	}

	return len(committed), nil
}
