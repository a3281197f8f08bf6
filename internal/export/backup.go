package export

import (
	"encoding/json"
	"fmt"

	"condoledger/internal/core"
)

// backupVersion identifies the backup envelope layout. Bump it when the
// envelope shape changes so restores can refuse payloads they do not
// understand.
const backupVersion = 1

// Backup is the lossless JSON envelope of one condominium's full ledger.
// It always serializes the unfiltered collections; a restore replaces the
// whole ledger, so a partial backup would silently drop records.
type Backup struct {
	CondoName    string             `json:"condoName"`
	ExportDate   string             `json:"exportDate"`
	Expenses     []core.Expense     `json:"expenses"`
	Incomes      []core.Income      `json:"incomes"`
	BankAccounts []core.BankAccount `json:"bankAccounts"`
	Version      int                `json:"version"`
}

// BackupJSON serializes the full ledger into the versioned envelope.
func BackupJSON(condoName string, l core.Ledger, today core.Date) ([]byte, error) {
	b := Backup{
		CondoName:    condoName,
		ExportDate:   string(today),
		Expenses:     l.Expenses,
		Incomes:      l.Incomes,
		BankAccounts: l.Accounts,
		Version:      backupVersion,
	}
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return out, nil
}

// ParseBackup decodes and checks a backup envelope. Records are validated
// so a hand-edited file cannot smuggle malformed data past restore.
func ParseBackup(data []byte) (core.Ledger, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return core.Ledger{}, fmt.Errorf("decode backup: %w", err)
	}
	if b.Version != backupVersion {
		return core.Ledger{}, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	for _, e := range b.Expenses {
		if err := e.Validate(); err != nil {
			return core.Ledger{}, fmt.Errorf("expense %q: %w", e.ID, err)
		}
	}
	for _, i := range b.Incomes {
		if err := i.Validate(); err != nil {
			return core.Ledger{}, fmt.Errorf("income %q: %w", i.ID, err)
		}
	}
	for _, a := range b.BankAccounts {
		if err := a.Validate(); err != nil {
			return core.Ledger{}, fmt.Errorf("account %q: %w", a.ID, err)
		}
	}
	return core.Ledger{
		Expenses: b.Expenses,
		Incomes:  b.Incomes,
		Accounts: b.BankAccounts,
	}, nil
}
