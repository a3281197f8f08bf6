package core

import "sort"

// AccountBalance computes the running balance of a bank account: initial
// balance plus every attributed income minus every attributed expense. No
// date filter applies; a balance is always "to date". Returns signed cents.
func AccountBalance(a BankAccount, expenses []Expense, incomes []Income) int64 {
	balance := a.InitialBalanceCents
	for _, i := range incomes {
		if i.BankAccountID == a.ID {
			balance += i.Amount.Cents
		}
	}
	for _, e := range expenses {
		if e.BankAccountID == a.ID {
			balance -= e.Amount.Cents
		}
	}
	return balance
}

// YearSummary holds the organization-wide aggregates for one year.
type YearSummary struct {
	Year             int   `json:"year"`
	TotalExpense     Money `json:"totalExpense"`
	TotalPaidExpense Money `json:"totalPaidExpense"`
	TotalIncome      Money `json:"totalIncome"`
	// NetCents is income minus total expense. The balance is accrual
	// style: committed spend counts, not just cash paid. Paid-vs-total is
	// surfaced separately as PaidPercent.
	NetCents    int64 `json:"netCents"`
	PaidPercent int   `json:"paidPercentage"`
}

// SummarizeYear aggregates expenses and incomes dated within the year.
// PaidPercent is round(100 * paid / total), 0 when there are no expenses.
func SummarizeYear(expenses []Expense, incomes []Income, year int) YearSummary {
	s := YearSummary{Year: year}
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		s.TotalExpense = s.TotalExpense.Add(e.Amount)
		if e.Status == StatusPaid {
			s.TotalPaidExpense = s.TotalPaidExpense.Add(e.Amount)
		}
	}
	for _, i := range incomes {
		if i.Date.Year() == year {
			s.TotalIncome = s.TotalIncome.Add(i.Amount)
		}
	}
	s.NetCents = s.TotalIncome.Cents - s.TotalExpense.Cents
	if s.TotalExpense.Cents > 0 {
		s.PaidPercent = int((s.TotalPaidExpense.Cents*100 + s.TotalExpense.Cents/2) / s.TotalExpense.Cents)
	}
	return s
}

// OverdueExpense pairs an unpaid past-due expense with its age in days.
type OverdueExpense struct {
	Expense     Expense `json:"expense"`
	DaysOverdue int     `json:"daysOverdue"`
}

// OverdueExpenses returns the unpaid expenses dated strictly before today,
// oldest first. An expense dated today is not overdue. Day counts use
// calendar-date arithmetic so timezone and DST shifts cannot skew them.
func OverdueExpenses(expenses []Expense, today Date) []OverdueExpense {
	var out []OverdueExpense
	for _, e := range expenses {
		if e.Status != StatusUnpaid || !e.Date.Before(today) {
			continue
		}
		out = append(out, OverdueExpense{
			Expense:     e,
			DaysOverdue: DaysBetween(e.Date, today),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Expense.Date < out[j].Expense.Date
	})
	return out
}
