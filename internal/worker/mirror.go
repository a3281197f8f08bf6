// Package worker runs the spreadsheet mirror: it listens for ledger change
// notifications and pushes the full workbook to the configured spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"condoledger/internal/amqp"
	"condoledger/internal/core"
	"condoledger/internal/export"
	"condoledger/internal/sheets"

	"golang.org/x/sync/errgroup"
)

// LedgerLoader is the read side of storage the mirror needs.
type LedgerLoader interface {
	LoadLedger(ctx context.Context, condo string) (core.Ledger, error)
}

// Mirror rebuilds the whole workbook on every change. The message carries
// no data, so a burst of changes collapses into identical rebuilds and the
// spreadsheet always reflects the latest loaded state.
type Mirror struct {
	condoName string
	loader    LedgerLoader
	writer    sheets.WorkbookWriter
	now       func() time.Time
}

func NewMirror(condoName string, loader LedgerLoader, writer sheets.WorkbookWriter) *Mirror {
	return &Mirror{
		condoName: condoName,
		loader:    loader,
		writer:    writer,
		now:       time.Now,
	}
}

// Handle processes one change notification. Returning an error requeues the
// message, so transient sheet failures are retried by the broker.
func (m *Mirror) Handle(msg *amqp.LedgerChangedMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := m.now()
	if err := m.Push(ctx, msg.Condo); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Mirrored ledger to spreadsheet",
		"condo", msg.Condo,
		"collection", msg.Collection,
		"duration", time.Since(start))
	return nil
}

// Push loads the ledger and writes all four sheets concurrently.
func (m *Mirror) Push(ctx context.Context, condo string) error {
	l, err := m.loader.LoadLedger(ctx, condo)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	today := core.Today(m.now())
	wb := export.BuildWorkbook(m.condoName, l, today.Year(), today)

	g, gctx := errgroup.WithContext(ctx)
	for _, sheet := range wb.Sheets {
		sheet := sheet
		g.Go(func() error {
			if err := m.writer.WriteSheet(gctx, sheet.Title, sheet.Values); err != nil {
				return fmt.Errorf("write sheet %s: %w", sheet.Title, err)
			}
			return nil
		})
	}
	return g.Wait()
}
