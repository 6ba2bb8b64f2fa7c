package transactionform

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// amountInputPattern accepts a non-negative decimal numeral or any prefix
// of one: "", "12", "12.", "12.5". Signs, letters and a second decimal
// point are rejected, so every keystroke leaves the field lexically valid.
var amountInputPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// acceptAmountInput reports whether the raw amount text may replace the
// current field value.
func acceptAmountInput(s string) bool {
	return amountInputPattern.MatchString(s)
}

// parseAmountOrZero converts the raw amount text to a decimal, defaulting
// to zero when the text does not parse (e.g. a bare "."). The silent
// default is a deliberate policy kept behind this function so it can be
// swapped in one place.
func parseAmountOrZero(s string) decimal.Decimal {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
