package core

// Expense categories shown in the UI choice lists. The set is closed for
// presentation purposes only: validation treats categories as an open string
// domain and folds unknown labels into the default bucket, because imported
// and extracted records routinely carry labels we have never seen.
const (
	CategoryMaintenance    = "Manutenzione"
	CategoryUtilities      = "Utenze"
	CategoryCleaning       = "Pulizie"
	CategoryAdministration = "Amministrazione"
	CategoryInsurance      = "Assicurazione"
	CategoryBankFees       = "Spese Bancarie"
	CategoryPostalSlip     = "Bollettino Postale"
	CategoryWaterReading   = "Lettura Acqua"
	CategoryMiscellaneous  = "Varie"
)

// Income categories.
const (
	CategoryDues         = "Quote Condominiali"
	CategoryGardenFees   = "Quote Giardinaggio"
	CategoryUtilityShare = "Quota Consorzio Utenze"
	CategoryOtherIncome  = "Altro"
)

var ExpenseCategories = []string{
	CategoryMaintenance,
	CategoryUtilities,
	CategoryCleaning,
	CategoryAdministration,
	CategoryInsurance,
	CategoryBankFees,
	CategoryPostalSlip,
	CategoryWaterReading,
	CategoryMiscellaneous,
}

var IncomeCategories = []string{
	CategoryDues,
	CategoryGardenFees,
	CategoryUtilityShare,
	CategoryOtherIncome,
}

// NormalizeExpenseCategory maps an arbitrary label onto the expense category
// set. Unknown labels degrade to "Varie" instead of being rejected.
func NormalizeExpenseCategory(label string) string {
	for _, c := range ExpenseCategories {
		if c == label {
			return c
		}
	}
	return CategoryMiscellaneous
}

// NormalizeIncomeCategory maps an arbitrary label onto the income category
// set. Unknown labels degrade to "Altro".
func NormalizeIncomeCategory(label string) string {
	for _, c := range IncomeCategories {
		if c == label {
			return c
		}
	}
	return CategoryOtherIncome
}
