// Package aggregation contains the transaction aggregation engine: the
// grouped-by-day view and the month-level totals the list screen renders.
package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/domain/entity"
	"github.com/pluto-finance/ledger/internal/domain/valueobject"
)

// GroupByDay buckets a date-descending transaction list by calendar day.
//
// Day groups appear in the order their first transaction appears in the
// input, and within a group transaction order is preserved, so a
// date-descending input yields date-descending groups. Each group's Total
// uses the daily sign convention: expenses add, income subtracts
// (positive = net outflow for that day). Empty input yields nil.
func GroupByDay(transactions []*entity.TransactionWithAccount) []entity.DayGroup {
	var groups []entity.DayGroup
	index := make(map[time.Time]int)

	for _, tx := range transactions {
		day := valueobject.DayOf(tx.Transaction.Date)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, entity.DayGroup{Day: day})
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
		groups[i].Total = groups[i].Total.Add(dailyContribution(tx.Transaction))
	}
	return groups
}

// dailyContribution returns the transaction's contribution to its day
// group's total: positive for expenses, negative for income.
func dailyContribution(tx *entity.Transaction) decimal.Decimal {
	if tx.Type == entity.TransactionTypeExpense {
		return tx.Amount
	}
	return tx.Amount.Neg()
}
