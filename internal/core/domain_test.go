package core

import "testing"

func validExpense() Expense {
	return Expense{
		ID:          "e1",
		Description: "Manutenzione ascensore",
		Amount:      Money{Cents: 45000},
		Date:        "2023-10-15",
		Category:    CategoryMaintenance,
		Status:      StatusPaid,
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := validExpense().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Expense)
		want   error
	}{
		{"empty description", func(e *Expense) { e.Description = "   " }, ErrMissingField},
		{"negative amount", func(e *Expense) { e.Amount.Cents = -1 }, ErrInvalidAmount},
		{"bad date", func(e *Expense) { e.Date = "15/10/2023" }, ErrInvalidDate},
		{"bad status", func(e *Expense) { e.Status = "maybe" }, ErrInvalidStatus},
	}
	for _, tc := range cases {
		e := validExpense()
		tc.mutate(&e)
		if err := e.Validate(); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	good := Income{Description: "Quota Rossi", Amount: Money{Cents: 55000}, Date: "2023-10-05", Category: CategoryDues}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := good
	bad.Description = ""
	if err := bad.Validate(); err != ErrMissingField {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}

func TestBankAccountValidate(t *testing.T) {
	if err := (BankAccount{Name: "Conto Condominio"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (BankAccount{Name: " "}).Validate(); err != ErrMissingField {
		t.Fatal("blank name should be rejected")
	}
}

func TestNormalizeIBAN(t *testing.T) {
	if got := NormalizeIBAN("  it60x0542811101000000123456 "); got != "IT60X0542811101000000123456" {
		t.Fatalf("NormalizeIBAN = %q", got)
	}
}

func TestExpenseDuplicate(t *testing.T) {
	orig := validExpense()
	orig.Attachments = []Attachment{{ID: "a1", Name: "fattura.pdf"}}

	dup := orig.Duplicate("e2", "2024-02-01")
	if dup.ID != "e2" {
		t.Errorf("id = %s", dup.ID)
	}
	if dup.Date != "2024-02-01" {
		t.Errorf("date = %s", dup.Date)
	}
	if len(dup.Attachments) != 0 {
		t.Error("attachments should be cleared on duplication")
	}
	if dup.Description != orig.Description || dup.Amount != orig.Amount {
		t.Error("description and amount should carry over")
	}
	if len(orig.Attachments) != 1 {
		t.Error("original must be untouched")
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeExpenseCategory(CategoryUtilities); got != CategoryUtilities {
		t.Errorf("known category changed to %q", got)
	}
	if got := NormalizeExpenseCategory("Spese Legali"); got != CategoryMiscellaneous {
		t.Errorf("unknown expense category = %q, want default bucket", got)
	}
	if got := NormalizeIncomeCategory("Donazioni"); got != CategoryOtherIncome {
		t.Errorf("unknown income category = %q, want default bucket", got)
	}
}

func TestAccountNamesDanglingReference(t *testing.T) {
	names := AccountNames([]BankAccount{{ID: "acc1", Name: "Banca Uno"}})
	if names["acc1"] != "Banca Uno" {
		t.Fatal("resolved name mismatch")
	}
	// Deleting an account never cascades to records: a stale id simply
	// resolves to the empty string.
	if names["gone"] != "" {
		t.Fatal("dangling reference should resolve to empty string")
	}
}
