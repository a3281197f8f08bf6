package export

import (
	"testing"

	"condoledger/internal/core"
)

func TestExpensesPDFTable(t *testing.T) {
	view, accounts := exportFixture()

	table := ExpensesPDFTable("Condominio Girasole", view, accounts, core.Date("2024-04-01"))

	if table.Title != "Condominio Girasole - Spese" {
		t.Errorf("title = %q", table.Title)
	}
	if table.ReportDate != "01/04/2024" {
		t.Errorf("report date = %q", table.ReportDate)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d", len(table.Rows))
	}
	row := table.Rows[0]
	if len(row) != len(table.Columns) {
		t.Fatalf("row width %d, columns %d", len(row), len(table.Columns))
	}
	if row[0] != "15/03/2024" {
		t.Errorf("date cell = %q", row[0])
	}
	if row[3] != "€450,00" {
		t.Errorf("amount cell = %q", row[3])
	}
	if row[4] != "Pagato" {
		t.Errorf("status cell = %q", row[4])
	}
	if table.FooterTotal != "Totale: €450,00" {
		t.Errorf("footer = %q", table.FooterTotal)
	}
}

func TestIncomesPDFTable(t *testing.T) {
	view := core.FilteredIncomes{
		Items: []core.Income{{
			ID:          "i1",
			Description: "Quote gennaio",
			Amount:      core.Money{Cents: 55000},
			Date:        "2024-01-05",
			Category:    core.CategoryDues,
		}},
		Total: core.Money{Cents: 55000},
	}

	table := IncomesPDFTable("Condominio Girasole", view, nil, core.Date("2024-04-01"))

	if table.Title != "Condominio Girasole - Entrate" {
		t.Errorf("title = %q", table.Title)
	}
	if len(table.Columns) != 5 {
		t.Errorf("columns = %d, incomes carry no status or attachments", len(table.Columns))
	}
	if table.Rows[0][3] != "€550,00" {
		t.Errorf("amount cell = %q", table.Rows[0][3])
	}
}
