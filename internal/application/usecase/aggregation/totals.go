package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// MonthlyTotals builds the month-level totals from the two already
// aggregated scalar sums. Net is income minus expense — the inverse sign
// convention from the per-day group totals. No clamping and no rounding
// beyond the natural precision of the sums.
func MonthlyTotals(income, expense decimal.Decimal) entity.Totals {
	return entity.Totals{
		Income:  income,
		Expense: expense,
		Net:     income.Sub(expense),
	}
}
