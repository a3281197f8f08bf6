package export

import (
	"condoledger/internal/core"
)

// WorkbookValues is the four-sheet spreadsheet payload: one value grid per
// sheet title, in the order the sheets should appear.
type WorkbookValues struct {
	Sheets []SheetValues
}

type SheetValues struct {
	Title  string
	Values [][]interface{}
}

// BuildWorkbook assembles the full-ledger spreadsheet: a summary sheet of
// the year's aggregates and account balances, then one sheet per record
// collection. The workbook is always built from the unfiltered ledger.
func BuildWorkbook(condoName string, l core.Ledger, year int, today core.Date) WorkbookValues {
	return WorkbookValues{
		Sheets: []SheetValues{
			summarySheet(condoName, l, year, today),
			expenseSheet(l),
			incomeSheet(l),
			accountSheet(l),
		},
	}
}

func summarySheet(condoName string, l core.Ledger, year int, today core.Date) SheetValues {
	s := core.SummarizeYear(l.Expenses, l.Incomes, year)

	values := [][]interface{}{
		{"Condominio", condoName},
		{"Data esportazione", today.FormatDisplay()},
		{"Anno", year},
		{},
		{"Totale spese", core.FormatEuro(s.TotalExpense.Cents)},
		{"Totale spese pagate", core.FormatEuro(s.TotalPaidExpense.Cents)},
		{"Totale entrate", core.FormatEuro(s.TotalIncome.Cents)},
		{"Saldo", core.FormatEuro(s.NetCents)},
		{"Percentuale pagata", s.PaidPercent},
		{},
		{"Conto", "Saldo"},
	}
	for _, a := range l.Accounts {
		values = append(values, []interface{}{
			a.Name, core.FormatEuro(core.AccountBalance(a, l.Expenses, l.Incomes)),
		})
	}
	return SheetValues{Title: "Riepilogo", Values: values}
}

func expenseSheet(l core.Ledger) SheetValues {
	names := core.AccountNames(l.Accounts)

	values := [][]interface{}{
		{"Data", "Descrizione", "Categoria", "Importo", "Stato", "Conto", "Allegati"},
	}
	for _, e := range l.Expenses {
		values = append(values, []interface{}{
			e.Date.FormatDisplay(),
			e.Description,
			e.Category,
			core.FormatDecimalComma(e.Amount.Cents),
			paymentLabel(e.Status),
			names[e.BankAccountID],
			len(e.Attachments),
		})
	}
	return SheetValues{Title: "Spese", Values: values}
}

func incomeSheet(l core.Ledger) SheetValues {
	names := core.AccountNames(l.Accounts)

	values := [][]interface{}{
		{"Data", "Descrizione", "Categoria", "Importo", "Conto"},
	}
	for _, i := range l.Incomes {
		values = append(values, []interface{}{
			i.Date.FormatDisplay(),
			i.Description,
			i.Category,
			core.FormatDecimalComma(i.Amount.Cents),
			names[i.BankAccountID],
		})
	}
	return SheetValues{Title: "Entrate", Values: values}
}

func accountSheet(l core.Ledger) SheetValues {
	values := [][]interface{}{
		{"Nome", "IBAN", "Saldo iniziale", "Saldo attuale"},
	}
	for _, a := range l.Accounts {
		values = append(values, []interface{}{
			a.Name,
			a.IBAN,
			core.FormatDecimalComma(a.InitialBalanceCents),
			core.FormatDecimalComma(core.AccountBalance(a, l.Expenses, l.Incomes)),
		})
	}
	return SheetValues{Title: "Conti", Values: values}
}
