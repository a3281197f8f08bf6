// Package services orchestrates ledger operations across storage, the
// message broker, and the extraction boundary.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"condoledger/internal/amqp"
	"condoledger/internal/core"

	"github.com/google/uuid"
)

// Repository is the persistence port the services need.
type Repository interface {
	LoadLedger(ctx context.Context, condo string) (core.Ledger, error)
	SaveExpenses(ctx context.Context, condo string, expenses []core.Expense) error
	SaveIncomes(ctx context.Context, condo string, incomes []core.Income) error
	SaveAccounts(ctx context.Context, condo string, accounts []core.BankAccount) error
	SaveLedger(ctx context.Context, condo string, l core.Ledger) error
}

// Publisher notifies the mirror worker of ledger changes.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, condo, collection string) error
}

// LedgerService owns the read-modify-write cycle of one condominium's
// ledger. Every mutation loads the current collections, applies the change,
// saves, and publishes a change notification. The notification is best
// effort: a broker outage never fails the mutation.
type LedgerService struct {
	condo     string
	repo      Repository
	publisher Publisher
	newID     func() string
	now       func() time.Time
}

func NewLedgerService(condo string, repo Repository, publisher Publisher) *LedgerService {
	return &LedgerService{
		condo:     condo,
		repo:      repo,
		publisher: publisher,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (s *LedgerService) today() core.Date {
	return core.Today(s.now())
}

// Snapshot returns the full current ledger.
func (s *LedgerService) Snapshot(ctx context.Context) (core.Ledger, error) {
	return s.repo.LoadLedger(ctx, s.condo)
}

// CreateExpense validates and stores a new expense. An absent date defaults
// to today. A manual entry that matches an existing one on description,
// amount, and date is refused with ErrDuplicateRecord unless the caller
// confirms the duplicate.
func (s *LedgerService) CreateExpense(ctx context.Context, e core.Expense, confirmDuplicate bool) (core.Expense, error) {
	if e.Date.IsZero() {
		e.Date = s.today()
	}
	e.Category = core.NormalizeExpenseCategory(e.Category)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load ledger: %w", err)
	}

	if !confirmDuplicate && core.IsDuplicateExpense(l.Expenses, e.Description, e.Amount.Cents, e.Date) {
		return core.Expense{}, core.ErrDuplicateRecord
	}

	e.ID = s.newID()
	l.Expenses = append(l.Expenses, e)
	if err := s.repo.SaveExpenses(ctx, s.condo, l.Expenses); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}

	s.publish(ctx, amqp.CollectionExpenses)
	return e, nil
}

// UpdateExpense replaces the expense with the same id.
func (s *LedgerService) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Category = core.NormalizeExpenseCategory(e.Category)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load ledger: %w", err)
	}

	found := false
	for i := range l.Expenses {
		if l.Expenses[i].ID == e.ID {
			l.Expenses[i] = e
			found = true
			break
		}
	}
	if !found {
		return core.Expense{}, core.ErrNotFound
	}

	if err := s.repo.SaveExpenses(ctx, s.condo, l.Expenses); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}

	s.publish(ctx, amqp.CollectionExpenses)
	return e, nil
}

// DeleteExpense removes the expense and its attachments.
func (s *LedgerService) DeleteExpense(ctx context.Context, id string) error {
	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	kept := l.Expenses[:0]
	found := false
	for _, e := range l.Expenses {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return core.ErrNotFound
	}

	if err := s.repo.SaveExpenses(ctx, s.condo, kept); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}

	s.publish(ctx, amqp.CollectionExpenses)
	return nil
}

// DuplicateExpense re-enters an existing expense with a fresh id and
// today's date. Attachments stay with the original.
func (s *LedgerService) DuplicateExpense(ctx context.Context, id string) (core.Expense, error) {
	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load ledger: %w", err)
	}

	for _, e := range l.Expenses {
		if e.ID != id {
			continue
		}
		dup := e.Duplicate(s.newID(), s.today())
		l.Expenses = append(l.Expenses, dup)
		if err := s.repo.SaveExpenses(ctx, s.condo, l.Expenses); err != nil {
			return core.Expense{}, fmt.Errorf("save expenses: %w", err)
		}
		s.publish(ctx, amqp.CollectionExpenses)
		return dup, nil
	}
	return core.Expense{}, core.ErrNotFound
}

// CreateIncome validates and stores a new income. An absent date defaults
// to today.
func (s *LedgerService) CreateIncome(ctx context.Context, i core.Income) (core.Income, error) {
	if i.Date.IsZero() {
		i.Date = s.today()
	}
	i.Category = core.NormalizeIncomeCategory(i.Category)
	if err := i.Validate(); err != nil {
		return core.Income{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.Income{}, fmt.Errorf("load ledger: %w", err)
	}

	i.ID = s.newID()
	l.Incomes = append(l.Incomes, i)
	if err := s.repo.SaveIncomes(ctx, s.condo, l.Incomes); err != nil {
		return core.Income{}, fmt.Errorf("save incomes: %w", err)
	}

	s.publish(ctx, amqp.CollectionIncomes)
	return i, nil
}

// UpdateIncome replaces the income with the same id.
func (s *LedgerService) UpdateIncome(ctx context.Context, in core.Income) (core.Income, error) {
	in.Category = core.NormalizeIncomeCategory(in.Category)
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.Income{}, fmt.Errorf("load ledger: %w", err)
	}

	found := false
	for i := range l.Incomes {
		if l.Incomes[i].ID == in.ID {
			l.Incomes[i] = in
			found = true
			break
		}
	}
	if !found {
		return core.Income{}, core.ErrNotFound
	}

	if err := s.repo.SaveIncomes(ctx, s.condo, l.Incomes); err != nil {
		return core.Income{}, fmt.Errorf("save incomes: %w", err)
	}

	s.publish(ctx, amqp.CollectionIncomes)
	return in, nil
}

// DeleteIncome removes the income.
func (s *LedgerService) DeleteIncome(ctx context.Context, id string) error {
	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	kept := l.Incomes[:0]
	found := false
	for _, i := range l.Incomes {
		if i.ID == id {
			found = true
			continue
		}
		kept = append(kept, i)
	}
	if !found {
		return core.ErrNotFound
	}

	if err := s.repo.SaveIncomes(ctx, s.condo, kept); err != nil {
		return fmt.Errorf("save incomes: %w", err)
	}

	s.publish(ctx, amqp.CollectionIncomes)
	return nil
}

// CreateAccount validates and stores a new bank account.
func (s *LedgerService) CreateAccount(ctx context.Context, a core.BankAccount) (core.BankAccount, error) {
	a.IBAN = core.NormalizeIBAN(a.IBAN)
	if err := a.Validate(); err != nil {
		return core.BankAccount{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("load ledger: %w", err)
	}

	a.ID = s.newID()
	l.Accounts = append(l.Accounts, a)
	if err := s.repo.SaveAccounts(ctx, s.condo, l.Accounts); err != nil {
		return core.BankAccount{}, fmt.Errorf("save accounts: %w", err)
	}

	s.publish(ctx, amqp.CollectionAccounts)
	return a, nil
}

// UpdateAccount replaces the account with the same id.
func (s *LedgerService) UpdateAccount(ctx context.Context, a core.BankAccount) (core.BankAccount, error) {
	a.IBAN = core.NormalizeIBAN(a.IBAN)
	if err := a.Validate(); err != nil {
		return core.BankAccount{}, err
	}

	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("load ledger: %w", err)
	}

	found := false
	for i := range l.Accounts {
		if l.Accounts[i].ID == a.ID {
			l.Accounts[i] = a
			found = true
			break
		}
	}
	if !found {
		return core.BankAccount{}, core.ErrNotFound
	}

	if err := s.repo.SaveAccounts(ctx, s.condo, l.Accounts); err != nil {
		return core.BankAccount{}, fmt.Errorf("save accounts: %w", err)
	}

	s.publish(ctx, amqp.CollectionAccounts)
	return a, nil
}

// DeleteAccount removes the account. Expenses and incomes that reference it
// keep their raw id; the reference is weak and resolves to no account from
// now on.
func (s *LedgerService) DeleteAccount(ctx context.Context, id string) error {
	l, err := s.repo.LoadLedger(ctx, s.condo)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	kept := l.Accounts[:0]
	found := false
	for _, a := range l.Accounts {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return core.ErrNotFound
	}

	if err := s.repo.SaveAccounts(ctx, s.condo, kept); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}

	s.publish(ctx, amqp.CollectionAccounts)
	return nil
}

// RestoreBackup replaces the whole ledger with the restored one.
func (s *LedgerService) RestoreBackup(ctx context.Context, l core.Ledger) error {
	if err := s.repo.SaveLedger(ctx, s.condo, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	s.publish(ctx, amqp.CollectionExpenses)
	s.publish(ctx, amqp.CollectionIncomes)
	s.publish(ctx, amqp.CollectionAccounts)
	return nil
}

func (s *LedgerService) publish(ctx context.Context, collection string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping change notification",
			"collection", collection)
		return
	}
	if err := s.publisher.PublishLedgerChanged(ctx, s.condo, collection); err != nil {
		// The mutation already committed; the mirror catches up on the
		// next change.
		slog.ErrorContext(ctx, "Failed to publish change notification",
			"collection", collection, "error", err)
	}
}
