package core

import (
	"errors"
	"strings"
)

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

type (
	// Status is the payment state of an expense.
	Status string

	// Attachment is a document linked to an expense. ContentRef points at
	// the stored payload; this package never dereferences it.
	Attachment struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		ContentRef string `json:"contentRef"`
		MIMEType   string `json:"mimeType"`
	}

	Expense struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Date        Date   `json:"date"`
		Category    string `json:"category"`
		Status      Status `json:"status"`
		// BankAccountID is a weak reference: the account may have been
		// deleted, in which case lookups degrade to "no account".
		BankAccountID string       `json:"bankAccountId"`
		Attachments   []Attachment `json:"attachments,omitempty"`
	}

	Income struct {
		ID            string `json:"id"`
		Description   string `json:"description"`
		Amount        Money  `json:"amount"`
		Date          Date   `json:"date"`
		Category      string `json:"category"`
		BankAccountID string `json:"bankAccountId"`
	}

	BankAccount struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		// InitialBalanceCents may be negative; it is the only signed
		// monetary input in the ledger.
		InitialBalanceCents int64  `json:"initialBalanceCents"`
		IBAN                string `json:"iban"`
	}

	// Ledger is the full record set of one condominium.
	Ledger struct {
		Expenses []Expense     `json:"expenses"`
		Incomes  []Income      `json:"incomes"`
		Accounts []BankAccount `json:"bankAccounts"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrNotFound        = errors.New("record not found")
)

func (s Status) Validate() error {
	switch s {
	case StatusPaid, StatusUnpaid:
		return nil
	}
	return ErrInvalidStatus
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrMissingField
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return e.Status.Validate()
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return ErrMissingField
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	return i.Date.Validate()
}

func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrMissingField
	}
	return nil
}

// NormalizeIBAN upper-cases and trims an IBAN. The value is free text and is
// not checksum-validated.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.TrimSpace(iban))
}

// Duplicate returns a copy of the expense ready for re-entry: fresh id,
// date reset to today, attachments cleared.
func (e Expense) Duplicate(newID string, today Date) Expense {
	dup := e
	dup.ID = newID
	dup.Date = today
	dup.Attachments = nil
	return dup
}

// AccountNames maps account ids to display names. Records whose weak
// reference no longer resolves get the empty string, never an error.
func AccountNames(accounts []BankAccount) map[string]string {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}
	return names
}
