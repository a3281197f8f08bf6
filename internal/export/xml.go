package export

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"condoledger/internal/core"
)

type xmlExpense struct {
	ID          string `xml:"id"`
	Date        string `xml:"date"`
	Description string `xml:"description"`
	Category    string `xml:"category"`
	Amount      string `xml:"amount"`
	Status      string `xml:"status"`
	BankAccount string `xml:"bankAccount"`
}

type xmlExpenseList struct {
	XMLName xml.Name     `xml:"expenses"`
	Total   string       `xml:"total,attr"`
	Items   []xmlExpense `xml:"expense"`
}

type xmlIncome struct {
	ID          string `xml:"id"`
	Date        string `xml:"date"`
	Description string `xml:"description"`
	Category    string `xml:"category"`
	Amount      string `xml:"amount"`
	BankAccount string `xml:"bankAccount"`
}

type xmlIncomeList struct {
	XMLName xml.Name    `xml:"incomes"`
	Total   string      `xml:"total,attr"`
	Items   []xmlIncome `xml:"income"`
}

// ExpensesXML renders a filtered expense view as an <expenses> document.
// encoding/xml escapes embedded angle brackets and ampersands; amounts use
// a dot decimal so the document stays machine-parseable.
func ExpensesXML(view core.FilteredExpenses, accounts []core.BankAccount) ([]byte, error) {
	names := core.AccountNames(accounts)

	doc := xmlExpenseList{Total: formatAmountDot(view.Total.Cents)}
	for _, e := range view.Items {
		doc.Items = append(doc.Items, xmlExpense{
			ID:          e.ID,
			Date:        string(e.Date),
			Description: e.Description,
			Category:    e.Category,
			Amount:      formatAmountDot(e.Amount.Cents),
			Status:      string(e.Status),
			BankAccount: names[e.BankAccountID],
		})
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal expenses xml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// IncomesXML renders a filtered income view as an <incomes> document.
func IncomesXML(view core.FilteredIncomes, accounts []core.BankAccount) ([]byte, error) {
	names := core.AccountNames(accounts)

	doc := xmlIncomeList{Total: formatAmountDot(view.Total.Cents)}
	for _, i := range view.Items {
		doc.Items = append(doc.Items, xmlIncome{
			ID:          i.ID,
			Date:        string(i.Date),
			Description: i.Description,
			Category:    i.Category,
			Amount:      formatAmountDot(i.Amount.Cents),
			BankAccount: names[i.BankAccountID],
		})
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal incomes xml: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// formatAmountDot renders cents as a canonical dot-decimal, e.g. "450.00".
func formatAmountDot(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}
