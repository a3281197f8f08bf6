package core

import "strings"

// Filter is the set of predicates a list view applies to a record
// collection. Zero-valued fields impose no constraint; the active ones are
// ANDed together.
type Filter struct {
	Search    string
	StartDate Date
	EndDate   Date
	Category  string
	AccountID string
	Status    Status
}

// ActiveCount tallies the non-default filter fields, for UI badges.
func (f Filter) ActiveCount() int {
	n := 0
	if strings.TrimSpace(f.Search) != "" {
		n++
	}
	if !f.StartDate.IsZero() {
		n++
	}
	if !f.EndDate.IsZero() {
		n++
	}
	if f.Category != "" {
		n++
	}
	if f.AccountID != "" {
		n++
	}
	if f.Status != "" {
		n++
	}
	return n
}

// FilteredExpenses is a filtered view plus its total. Every export of the
// same view must reuse this total rather than re-summing.
type FilteredExpenses struct {
	Items []Expense
	Total Money
}

type FilteredIncomes struct {
	Items []Income
	Total Money
}

// FilterExpenses applies the filter to the expense collection, preserving
// the original relative order. Account names resolve through the weak
// reference; a dangling reference matches as the empty string.
func FilterExpenses(items []Expense, accounts []BankAccount, f Filter) FilteredExpenses {
	names := AccountNames(accounts)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var out FilteredExpenses
	for _, e := range items {
		if search != "" && !matchesSearch(search, e.Description, e.Category, names[e.BankAccountID]) {
			continue
		}
		if !inDateRange(e.Date, f.StartDate, f.EndDate) {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.AccountID != "" && e.BankAccountID != f.AccountID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out.Items = append(out.Items, e)
		out.Total = out.Total.Add(e.Amount)
	}
	return out
}

// FilterIncomes mirrors FilterExpenses; incomes have no payment status, so
// the Status predicate is ignored.
func FilterIncomes(items []Income, accounts []BankAccount, f Filter) FilteredIncomes {
	names := AccountNames(accounts)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var out FilteredIncomes
	for _, i := range items {
		if search != "" && !matchesSearch(search, i.Description, i.Category, names[i.BankAccountID]) {
			continue
		}
		if !inDateRange(i.Date, f.StartDate, f.EndDate) {
			continue
		}
		if f.Category != "" && i.Category != f.Category {
			continue
		}
		if f.AccountID != "" && i.BankAccountID != f.AccountID {
			continue
		}
		out.Items = append(out.Items, i)
		out.Total = out.Total.Add(i.Amount)
	}
	return out
}

func matchesSearch(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// inDateRange bounds the record date inclusively on both ends, comparing
// ISO strings directly.
func inDateRange(d, start, end Date) bool {
	if !start.IsZero() && d < start {
		return false
	}
	if !end.IsZero() && d > end {
		return false
	}
	return true
}
