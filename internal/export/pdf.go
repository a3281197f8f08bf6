package export

import (
	"strconv"

	"condoledger/internal/core"
)

// PDFTable is the layout-independent contract for the printable report:
// a title block, column headings, string rows, and a footer total. The
// renderer on the other side of this contract decides fonts and pagination;
// this package decides content and formatting.
type PDFTable struct {
	Title       string     `json:"title"`
	ReportDate  string     `json:"reportDate"`
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	FooterTotal string     `json:"footerTotal"`
}

// ExpensesPDFTable builds the printable expense report for a filtered view.
// Dates are display-formatted and amounts carry the euro sign; the footer
// reuses the view's total.
func ExpensesPDFTable(condoName string, view core.FilteredExpenses, accounts []core.BankAccount, today core.Date) PDFTable {
	names := core.AccountNames(accounts)

	t := PDFTable{
		Title:       condoName + " - Spese",
		ReportDate:  today.FormatDisplay(),
		Columns:     []string{"Data", "Descrizione", "Categoria", "Importo", "Stato", "Conto", "Allegati"},
		FooterTotal: "Totale: " + core.FormatEuro(view.Total.Cents),
	}
	for _, e := range view.Items {
		t.Rows = append(t.Rows, []string{
			e.Date.FormatDisplay(),
			e.Description,
			e.Category,
			core.FormatEuro(e.Amount.Cents),
			paymentLabel(e.Status),
			names[e.BankAccountID],
			strconv.Itoa(len(e.Attachments)),
		})
	}
	return t
}

// IncomesPDFTable builds the printable income report.
func IncomesPDFTable(condoName string, view core.FilteredIncomes, accounts []core.BankAccount, today core.Date) PDFTable {
	names := core.AccountNames(accounts)

	t := PDFTable{
		Title:       condoName + " - Entrate",
		ReportDate:  today.FormatDisplay(),
		Columns:     []string{"Data", "Descrizione", "Categoria", "Importo", "Conto"},
		FooterTotal: "Totale: " + core.FormatEuro(view.Total.Cents),
	}
	for _, i := range view.Items {
		t.Rows = append(t.Rows, []string{
			i.Date.FormatDisplay(),
			i.Description,
			i.Category,
			core.FormatEuro(i.Amount.Cents),
			names[i.BankAccountID],
		})
	}
	return t
}

func paymentLabel(s core.Status) string {
	if s == core.StatusPaid {
		return "Pagato"
	}
	return "Da pagare"
}
