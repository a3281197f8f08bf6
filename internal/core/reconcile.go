package core

import "strings"

// Candidate is an unadmitted expense-shaped record from a file import or
// from the extraction service. All fields are raw strings: nothing here is
// trusted until ValidateCandidate has run.
type Candidate struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	BankAccountID string `json:"bankAccountId"`
}

// ReviewedCandidate is a validated candidate awaiting commit. Duplicate
// marks an exact match against the existing ledger; batch review keeps
// duplicates so a human can drop them before the final commit.
type ReviewedCandidate struct {
	Expense   Expense `json:"expense"`
	Duplicate bool    `json:"duplicate"`
}

// BatchReport tells the caller how much of a batch survived validation.
type BatchReport struct {
	Total      int `json:"total"`
	Accepted   int `json:"accepted"`
	Rejected   int `json:"rejected"`
	Duplicates int `json:"duplicates"`
}

// ValidateCandidate applies the write-path validation rules to a candidate.
// The amount must parse to a non-negative decimal, the description must be
// non-empty after trimming, a missing date defaults to today, and an
// unknown category folds into the default bucket. The returned expense has
// no id yet; ids are assigned at commit.
func ValidateCandidate(c Candidate, today Date) (Expense, error) {
	desc := strings.TrimSpace(c.Description)
	if desc == "" {
		return Expense{}, ErrMissingField
	}
	cents, err := ParseDecimalToCents(c.Amount)
	if err != nil {
		return Expense{}, err
	}

	date := today
	if strings.TrimSpace(c.Date) != "" {
		date, err = ParseDate(strings.TrimSpace(c.Date))
		if err != nil {
			return Expense{}, err
		}
	}

	status := StatusUnpaid
	if c.Status != "" {
		status = Status(c.Status)
		if err := status.Validate(); err != nil {
			return Expense{}, err
		}
	}

	return Expense{
		Description:   desc,
		Amount:        Money{Cents: cents},
		Date:          date,
		Category:      NormalizeExpenseCategory(strings.TrimSpace(c.Category)),
		Status:        status,
		BankAccountID: c.BankAccountID,
	}, nil
}

// IsDuplicateExpense reports whether the ledger already holds a record with
// the same trimmed lower-cased description, the same amount, and the same
// date. Changing any one of the three clears the flag.
func IsDuplicateExpense(existing []Expense, description string, cents int64, date Date) bool {
	key := strings.ToLower(strings.TrimSpace(description))
	for _, e := range existing {
		if strings.ToLower(strings.TrimSpace(e.Description)) == key &&
			e.Amount.Cents == cents &&
			e.Date == date {
			return true
		}
	}
	return false
}

// ReviewBatch validates every candidate independently and marks duplicates
// against the existing ledger. Invalid candidates are dropped from the
// result; duplicates are kept and only flagged, because a batch is reviewed
// as a whole before commit.
func ReviewBatch(existing []Expense, batch []Candidate, today Date) ([]ReviewedCandidate, BatchReport) {
	report := BatchReport{Total: len(batch)}
	reviewed := make([]ReviewedCandidate, 0, len(batch))
	for _, c := range batch {
		exp, err := ValidateCandidate(c, today)
		if err != nil {
			report.Rejected++
			continue
		}
		dup := IsDuplicateExpense(existing, exp.Description, exp.Amount.Cents, exp.Date)
		if dup {
			report.Duplicates++
		}
		report.Accepted++
		reviewed = append(reviewed, ReviewedCandidate{Expense: exp, Duplicate: dup})
	}
	return reviewed, report
}

// CommitCandidates assigns a fresh id to every reviewed candidate and
// returns the records to append. Nothing existing is ever overwritten.
func CommitCandidates(reviewed []ReviewedCandidate, newID func() string) []Expense {
	out := make([]Expense, 0, len(reviewed))
	for _, rc := range reviewed {
		e := rc.Expense
		e.ID = newID()
		out = append(out, e)
	}
	return out
}
