package core

import "testing"

func sampleLedger() Ledger {
	return Ledger{
		Accounts: []BankAccount{
			{ID: "acc1", Name: "Banca Uno", InitialBalanceCents: 500000},
			{ID: "acc2", Name: "Banca Due"},
		},
		Expenses: []Expense{
			{ID: "e1", Description: "Manutenzione ascensore", Amount: Money{Cents: 45000}, Date: "2023-10-15", Category: CategoryMaintenance, Status: StatusPaid, BankAccountID: "acc1"},
			{ID: "e2", Description: "Bolletta luce scale", Amount: Money{Cents: 12050}, Date: "2023-11-02", Category: CategoryUtilities, Status: StatusUnpaid, BankAccountID: "acc2"},
			{ID: "e3", Description: "Pulizia androne", Amount: Money{Cents: 8000}, Date: "2023-11-20", Category: CategoryCleaning, Status: StatusPaid, BankAccountID: "deleted-acc"},
		},
		Incomes: []Income{
			{ID: "i1", Description: "Quota Rossi", Amount: Money{Cents: 55000}, Date: "2023-10-05", Category: CategoryDues, BankAccountID: "acc1"},
		},
	}
}

func TestFilterExpensesByCategory(t *testing.T) {
	l := sampleLedger()
	got := FilterExpenses(l.Expenses, l.Accounts, Filter{Category: CategoryMaintenance})
	if len(got.Items) != 1 || got.Items[0].ID != "e1" {
		t.Fatalf("items = %+v", got.Items)
	}
	if got.Total.Cents != 45000 {
		t.Fatalf("total = %d, want 45000", got.Total.Cents)
	}
}

func TestFilterExpensesSearch(t *testing.T) {
	l := sampleLedger()

	// Case-insensitive substring over description.
	got := FilterExpenses(l.Expenses, l.Accounts, Filter{Search: "ASCENSORE"})
	if len(got.Items) != 1 || got.Items[0].ID != "e1" {
		t.Fatalf("search by description: %+v", got.Items)
	}

	// Search also matches the resolved account display name.
	got = FilterExpenses(l.Expenses, l.Accounts, Filter{Search: "banca due"})
	if len(got.Items) != 1 || got.Items[0].ID != "e2" {
		t.Fatalf("search by account name: %+v", got.Items)
	}

	// A dangling account reference contributes an empty string and never
	// panics.
	got = FilterExpenses(l.Expenses, l.Accounts, Filter{Search: "banca"})
	if len(got.Items) != 2 {
		t.Fatalf("dangling reference search: %+v", got.Items)
	}
}

func TestFilterExpensesDateRange(t *testing.T) {
	l := sampleLedger()
	got := FilterExpenses(l.Expenses, l.Accounts, Filter{StartDate: "2023-11-02", EndDate: "2023-11-20"})
	if len(got.Items) != 2 {
		t.Fatalf("inclusive bounds: got %d items", len(got.Items))
	}
	got = FilterExpenses(l.Expenses, l.Accounts, Filter{EndDate: "2023-11-01"})
	if len(got.Items) != 1 || got.Items[0].ID != "e1" {
		t.Fatalf("end bound: %+v", got.Items)
	}
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	l := sampleLedger()
	got := FilterExpenses(l.Expenses, l.Accounts, Filter{
		Status:    StatusPaid,
		StartDate: "2023-11-01",
	})
	if len(got.Items) != 1 || got.Items[0].ID != "e3" {
		t.Fatalf("combined predicates: %+v", got.Items)
	}
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	l := sampleLedger()
	f := Filter{Status: StatusPaid}
	first := FilterExpenses(l.Expenses, l.Accounts, f)
	second := FilterExpenses(l.Expenses, l.Accounts, f)

	if len(first.Items) != len(second.Items) || first.Total != second.Total {
		t.Fatal("same filter must yield identical results")
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Fatal("same filter must yield identical ordering")
		}
	}
	if first.Items[0].ID != "e1" || first.Items[1].ID != "e3" {
		t.Fatal("original relative order must be preserved")
	}
}

func TestFilterIncomes(t *testing.T) {
	l := sampleLedger()
	got := FilterIncomes(l.Incomes, l.Accounts, Filter{AccountID: "acc1"})
	if len(got.Items) != 1 || got.Total.Cents != 55000 {
		t.Fatalf("incomes = %+v total=%d", got.Items, got.Total.Cents)
	}
	// Status is an expense-only predicate and must not exclude incomes.
	got = FilterIncomes(l.Incomes, l.Accounts, Filter{Status: StatusPaid})
	if len(got.Items) != 1 {
		t.Fatal("status predicate should be ignored for incomes")
	}
}

func TestFilterActiveCount(t *testing.T) {
	if got := (Filter{}).ActiveCount(); got != 0 {
		t.Fatalf("empty filter active count = %d", got)
	}
	f := Filter{Search: "x", StartDate: "2023-01-01", Category: CategoryUtilities}
	if got := f.ActiveCount(); got != 3 {
		t.Fatalf("active count = %d, want 3", got)
	}
}
