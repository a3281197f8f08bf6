// Package storage persists condominium ledgers in SQLite. Saves are
// whole-collection replacements inside a transaction; last write wins, which
// matches the single-administrator usage this ledger is built for.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"condoledger/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadLedger reads the full record set of one condominium. Rows come back
// in insertion order so list views and exports keep the order records were
// entered in.
func (r *SQLiteRepository) LoadLedger(ctx context.Context, condo string) (core.Ledger, error) {
	var l core.Ledger

	expenses, err := r.loadExpenses(ctx, condo)
	if err != nil {
		return l, fmt.Errorf("load expenses: %w", err)
	}
	incomes, err := r.loadIncomes(ctx, condo)
	if err != nil {
		return l, fmt.Errorf("load incomes: %w", err)
	}
	accounts, err := r.loadAccounts(ctx, condo)
	if err != nil {
		return l, fmt.Errorf("load bank accounts: %w", err)
	}

	l.Expenses = expenses
	l.Incomes = incomes
	l.Accounts = accounts
	return l, nil
}

func (r *SQLiteRepository) loadExpenses(ctx context.Context, condo string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, date, category, status, bank_account_id
		FROM expenses WHERE condo = ? ORDER BY position`, condo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		var date, status string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount.Cents, &date, &e.Category, &status, &e.BankAccountID); err != nil {
			return nil, err
		}
		e.Date = core.Date(date)
		e.Status = core.Status(status)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		atts, err := r.loadAttachments(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Attachments = atts
	}
	return out, nil
}

func (r *SQLiteRepository) loadAttachments(ctx context.Context, expenseID string) ([]core.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, content_ref, mime_type
		FROM attachments WHERE expense_id = ? ORDER BY position`, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Attachment
	for rows.Next() {
		var a core.Attachment
		if err := rows.Scan(&a.ID, &a.Name, &a.ContentRef, &a.MIMEType); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadIncomes(ctx context.Context, condo string) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, date, category, bank_account_id
		FROM incomes WHERE condo = ? ORDER BY position`, condo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var i core.Income
		var date string
		if err := rows.Scan(&i.ID, &i.Description, &i.Amount.Cents, &date, &i.Category, &i.BankAccountID); err != nil {
			return nil, err
		}
		i.Date = core.Date(date)
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadAccounts(ctx context.Context, condo string) ([]core.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, initial_balance_cents, iban
		FROM bank_accounts WHERE condo = ? ORDER BY rowid`, condo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.BankAccount
	for rows.Next() {
		var a core.BankAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.InitialBalanceCents, &a.IBAN); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveExpenses replaces the condominium's expense collection, attachments
// included.
func (r *SQLiteRepository) SaveExpenses(ctx context.Context, condo string, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM attachments WHERE expense_id IN (SELECT id FROM expenses WHERE condo = ?)`, condo); err != nil {
		return fmt.Errorf("clear attachments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE condo = ?`, condo); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	for pos, e := range expenses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (id, condo, description, amount_cents, date, category, status, bank_account_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, condo, e.Description, e.Amount.Cents, string(e.Date), e.Category, string(e.Status), e.BankAccountID, pos); err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
		for apos, a := range e.Attachments {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO attachments (id, expense_id, name, content_ref, mime_type, position)
				VALUES (?, ?, ?, ?, ?, ?)`,
				a.ID, e.ID, a.Name, a.ContentRef, a.MIMEType, apos); err != nil {
				return fmt.Errorf("insert attachment %s: %w", a.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Expenses saved", "condo", condo, "count", len(expenses))
	return nil
}

// SaveIncomes replaces the condominium's income collection.
func (r *SQLiteRepository) SaveIncomes(ctx context.Context, condo string, incomes []core.Income) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM incomes WHERE condo = ?`, condo); err != nil {
		return fmt.Errorf("clear incomes: %w", err)
	}
	for pos, i := range incomes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO incomes (id, condo, description, amount_cents, date, category, bank_account_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i.ID, condo, i.Description, i.Amount.Cents, string(i.Date), i.Category, i.BankAccountID, pos); err != nil {
			return fmt.Errorf("insert income %s: %w", i.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Incomes saved", "condo", condo, "count", len(incomes))
	return nil
}

// SaveAccounts replaces the condominium's bank account collection. Expense
// and income rows keep their bank_account_id even when the account is gone;
// the reference is weak by design of the domain, not enforced here.
func (r *SQLiteRepository) SaveAccounts(ctx context.Context, condo string, accounts []core.BankAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_accounts WHERE condo = ?`, condo); err != nil {
		return fmt.Errorf("clear bank accounts: %w", err)
	}
	for _, a := range accounts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bank_accounts (id, condo, name, initial_balance_cents, iban)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, condo, a.Name, a.InitialBalanceCents, a.IBAN); err != nil {
			return fmt.Errorf("insert bank account %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Bank accounts saved", "condo", condo, "count", len(accounts))
	return nil
}

// SaveLedger replaces all three collections. Used by backup restore, which
// swaps the entire ledger in one shot.
func (r *SQLiteRepository) SaveLedger(ctx context.Context, condo string, l core.Ledger) error {
	if err := r.SaveExpenses(ctx, condo, l.Expenses); err != nil {
		return err
	}
	if err := r.SaveIncomes(ctx, condo, l.Incomes); err != nil {
		return err
	}
	return r.SaveAccounts(ctx, condo, l.Accounts)
}
