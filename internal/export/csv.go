// Package export turns filtered record sets and their precomputed totals
// into the canonical payloads of each target format. Every filtered export
// receives the total computed by the filter engine and transcribes it
// verbatim: the footer of an export can never drift from the list view it
// mirrors.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"condoledger/internal/core"
)

// utf8BOM prefixes CSV output so spreadsheet applications detect the
// encoding instead of guessing.
const utf8BOM = "\xEF\xBB\xBF"

var expenseCSVHeader = []string{
	"ID", "Data", "Descrizione", "Categoria", "Importo",
	"StatoPagamento", "ContoCorrente", "IDConto", "NumeroAllegati",
}

var incomeCSVHeader = []string{
	"ID", "Data", "Descrizione", "Categoria", "Importo",
	"ContoCorrente", "IDConto",
}

// ExpensesCSV renders a filtered expense view as semicolon-delimited CSV.
// Dates stay in raw ISO form; amounts use the decimal comma the target
// spreadsheet locale expects. The trailing total row carries the filtered
// total as-is.
func ExpensesCSV(view core.FilteredExpenses, accounts []core.BankAccount) ([]byte, error) {
	names := core.AccountNames(accounts)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(expenseCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range view.Items {
		row := []string{
			e.ID,
			string(e.Date),
			e.Description,
			e.Category,
			core.FormatDecimalComma(e.Amount.Cents),
			string(e.Status),
			names[e.BankAccountID],
			e.BankAccountID,
			strconv.Itoa(len(e.Attachments)),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	total := []string{"", "", "Totale", "", core.FormatDecimalComma(view.Total.Cents), "", "", "", ""}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("write csv total: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// IncomesCSV is the income-equivalent subset: no payment status, no
// attachment count.
func IncomesCSV(view core.FilteredIncomes, accounts []core.BankAccount) ([]byte, error) {
	names := core.AccountNames(accounts)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(incomeCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, i := range view.Items {
		row := []string{
			i.ID,
			string(i.Date),
			i.Description,
			i.Category,
			core.FormatDecimalComma(i.Amount.Cents),
			names[i.BankAccountID],
			i.BankAccountID,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	total := []string{"", "", "Totale", "", core.FormatDecimalComma(view.Total.Cents), "", ""}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("write csv total: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
