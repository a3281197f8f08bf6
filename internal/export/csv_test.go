package export

import (
	"strings"
	"testing"

	"condoledger/internal/core"
)

func exportFixture() (core.FilteredExpenses, []core.BankAccount) {
	accounts := []core.BankAccount{
		{ID: "acc1", Name: "Conto Principale", InitialBalanceCents: 500000},
	}
	view := core.FilteredExpenses{
		Items: []core.Expense{
			{
				ID:            "e1",
				Description:   "Manutenzione ascensore",
				Amount:        core.Money{Cents: 45000},
				Date:          "2024-03-15",
				Category:      core.CategoryMaintenance,
				Status:        core.StatusPaid,
				BankAccountID: "acc1",
				Attachments:   []core.Attachment{{ID: "a1", Name: "fattura.pdf"}},
			},
		},
		Total: core.Money{Cents: 45000},
	}
	return view, accounts
}

func TestExpensesCSV(t *testing.T) {
	view, accounts := exportFixture()

	out, err := ExpensesCSV(view, accounts)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	s := string(out)

	if !strings.HasPrefix(s, "\xEF\xBB\xBF") {
		t.Error("output must start with a UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "\xEF\xBB\xBF"), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + row + total", len(lines))
	}
	if lines[0] != "ID;Data;Descrizione;Categoria;Importo;StatoPagamento;ContoCorrente;IDConto;NumeroAllegati" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "e1;2024-03-15;Manutenzione ascensore;Manutenzione;450,00;paid;Conto Principale;acc1;1" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != ";;Totale;;450,00;;;;" {
		t.Errorf("total = %q", lines[2])
	}
}

func TestExpensesCSVDanglingAccount(t *testing.T) {
	view, _ := exportFixture()

	out, err := ExpensesCSV(view, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	lines := strings.Split(string(out), "\n")
	// A deleted account leaves the name column empty but keeps the raw id.
	if !strings.Contains(lines[1], ";;acc1;") {
		t.Errorf("row = %q, want empty account name with raw id", lines[1])
	}
}

func TestExpensesCSVQuotesSeparator(t *testing.T) {
	view := core.FilteredExpenses{
		Items: []core.Expense{{
			ID:          "e1",
			Description: "Pulizia; straordinaria",
			Amount:      core.Money{Cents: 100},
			Date:        "2024-01-01",
			Category:    core.CategoryCleaning,
			Status:      core.StatusUnpaid,
		}},
		Total: core.Money{Cents: 100},
	}
	out, err := ExpensesCSV(view, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(string(out), `"Pulizia; straordinaria"`) {
		t.Error("field containing the separator must be quoted")
	}
}

func TestIncomesCSV(t *testing.T) {
	view := core.FilteredIncomes{
		Items: []core.Income{{
			ID:            "i1",
			Description:   "Quote gennaio",
			Amount:        core.Money{Cents: 55000},
			Date:          "2024-01-05",
			Category:      core.CategoryDues,
			BankAccountID: "acc1",
		}},
		Total: core.Money{Cents: 55000},
	}
	accounts := []core.BankAccount{{ID: "acc1", Name: "Conto Principale"}}

	out, err := IncomesCSV(view, accounts)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(string(out), "\xEF\xBB\xBF"), "\n"), "\n")
	if lines[0] != "ID;Data;Descrizione;Categoria;Importo;ContoCorrente;IDConto" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "i1;2024-01-05;Quote gennaio;Quote Condominiali;550,00;Conto Principale;acc1" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != ";;Totale;;550,00;;" {
		t.Errorf("total = %q", lines[2])
	}
}
