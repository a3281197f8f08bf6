package core

import "testing"

func rollupExpenses() []Expense {
	return []Expense{
		{ID: "e1", Description: "Ascensore", Amount: Money{Cents: 45000}, Date: "2023-10-15", Category: CategoryMaintenance, Status: StatusPaid},
		{ID: "e2", Description: "Luce scale", Amount: Money{Cents: 12000}, Date: "2023-10-20", Category: CategoryUtilities, Status: StatusPaid},
		{ID: "e3", Description: "Caldaia", Amount: Money{Cents: 30000}, Date: "2023-11-05", Category: CategoryMaintenance, Status: StatusUnpaid},
		{ID: "e4", Description: "Acqua", Amount: Money{Cents: 9000}, Date: "2023-11-10", Category: CategoryUtilities, Status: StatusPaid},
		{ID: "e5", Description: "Altro anno", Amount: Money{Cents: 99999}, Date: "2022-11-10", Category: CategoryUtilities, Status: StatusPaid},
	}
}

func TestGroupExpensesByMonth(t *testing.T) {
	groups := GroupExpensesByMonth(rollupExpenses(), 2023)

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2 (empty months omitted, other years excluded)", len(groups))
	}
	// Most recent month first.
	if groups[0].Month != 11 || groups[1].Month != 10 {
		t.Fatalf("month order = %d, %d", groups[0].Month, groups[1].Month)
	}

	nov := groups[0]
	if nov.Total.Cents != 39000 || nov.Count != 2 {
		t.Fatalf("november total=%d count=%d", nov.Total.Cents, nov.Count)
	}
	// Categories by subtotal descending.
	if nov.Categories[0].Category != CategoryMaintenance || nov.Categories[0].Total.Cents != 30000 {
		t.Fatalf("november top category = %+v", nov.Categories[0])
	}
	if nov.Categories[1].Category != CategoryUtilities || nov.Categories[1].Count != 1 {
		t.Fatalf("november second category = %+v", nov.Categories[1])
	}
}

func TestGroupExpensesByCategory(t *testing.T) {
	groups := GroupExpensesByCategory(rollupExpenses(), 2023)

	if len(groups) != 2 {
		t.Fatalf("groups = %d", len(groups))
	}
	// Lexicographic category order: Manutenzione before Utenze.
	if groups[0].Category != CategoryMaintenance || groups[1].Category != CategoryUtilities {
		t.Fatalf("category order = %s, %s", groups[0].Category, groups[1].Category)
	}
	// Months ascending inside a category.
	maint := groups[0]
	if len(maint.Months) != 2 || maint.Months[0].Month != 10 || maint.Months[1].Month != 11 {
		t.Fatalf("month order in category = %+v", maint.Months)
	}
	if maint.Total.Cents != 75000 || maint.Count != 2 {
		t.Fatalf("maintenance total=%d count=%d", maint.Total.Cents, maint.Count)
	}
}

// Partition invariant: group totals must reconcile with the filtered input
// total, and item subtotals with their group total, for both grouping modes.
func TestRollupPartitionTotals(t *testing.T) {
	items := rollupExpenses()
	var inputTotal int64
	for _, e := range items {
		if e.Date.Year() == 2023 {
			inputTotal += e.Amount.Cents
		}
	}

	var byMonthSum int64
	for _, g := range GroupExpensesByMonth(items, 2023) {
		var sub int64
		for _, c := range g.Categories {
			sub += c.Total.Cents
		}
		if sub != g.Total.Cents {
			t.Fatalf("month %d: category subtotals %d != group total %d", g.Month, sub, g.Total.Cents)
		}
		byMonthSum += g.Total.Cents
	}
	if byMonthSum != inputTotal {
		t.Fatalf("byMonth sum %d != input total %d", byMonthSum, inputTotal)
	}

	var byCatSum int64
	for _, g := range GroupExpensesByCategory(items, 2023) {
		var sub int64
		for _, m := range g.Months {
			sub += m.Total.Cents
		}
		if sub != g.Total.Cents {
			t.Fatalf("category %s: month subtotals %d != group total %d", g.Category, sub, g.Total.Cents)
		}
		byCatSum += g.Total.Cents
	}
	if byCatSum != inputTotal {
		t.Fatalf("byCategory sum %d != input total %d", byCatSum, inputTotal)
	}
}

func TestRollupEmptyInput(t *testing.T) {
	if got := GroupExpensesByMonth(nil, 2023); len(got) != 0 {
		t.Fatalf("byMonth on empty input = %+v", got)
	}
	if got := GroupExpensesByCategory(nil, 2023); len(got) != 0 {
		t.Fatalf("byCategory on empty input = %+v", got)
	}
}

func TestRollupCategoryTieKeepsFirstEncounteredOrder(t *testing.T) {
	items := []Expense{
		{ID: "a", Description: "x", Amount: Money{Cents: 100}, Date: "2023-03-01", Category: CategoryCleaning, Status: StatusPaid},
		{ID: "b", Description: "y", Amount: Money{Cents: 100}, Date: "2023-03-02", Category: CategoryInsurance, Status: StatusPaid},
	}
	groups := GroupExpensesByMonth(items, 2023)
	if len(groups) != 1 {
		t.Fatalf("groups = %d", len(groups))
	}
	cats := groups[0].Categories
	if cats[0].Category != CategoryCleaning || cats[1].Category != CategoryInsurance {
		t.Fatalf("tie order = %s, %s", cats[0].Category, cats[1].Category)
	}
}
