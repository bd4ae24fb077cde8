package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Human-facing figures use French conventions: grouped thousands, decimal
// comma and a trailing euro sign. Machine formats (csv, json) keep plain decimals.
var frPrinter = message.NewPrinter(language.French)

// FormatCurrency formats a whole-euro amount, e.g. "174 000 €".
func FormatCurrency(amount decimal.Decimal) string {
	return frPrinter.Sprintf("%v €", number.Decimal(amount.Round(0).InexactFloat64(), number.Scale(0)))
}

// FormatPercentage formats a percentage with 2 decimals, e.g. "4,80 %".
func FormatPercentage(pct decimal.Decimal) string {
	return frPrinter.Sprintf("%v %%", number.Decimal(pct.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatRebate formats a rebate percentage with 1 decimal.
func FormatRebate(pct decimal.Decimal) string {
	return frPrinter.Sprintf("%v %%", number.Decimal(pct.Round(1).InexactFloat64(), number.Scale(1)))
}
