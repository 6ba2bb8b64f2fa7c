package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMonthlyTotals(t *testing.T) {
	cases := []struct {
		name    string
		income  string
		expense string
		wantNet string
	}{
		{"income above expense", "100", "40", "60"},
		{"expense above income", "40", "120", "-80"},
		{"zero month", "0", "0", "0"},
		{"fractional amounts keep precision", "10.55", "3.05", "7.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := MonthlyTotals(
				decimal.RequireFromString(tc.income),
				decimal.RequireFromString(tc.expense),
			)
			if want := decimal.RequireFromString(tc.wantNet); !totals.Net.Equal(want) {
				t.Errorf("expected net %s, got %s", want, totals.Net)
			}
			if !totals.Income.Equal(decimal.RequireFromString(tc.income)) {
				t.Errorf("income passed through incorrectly: %s", totals.Income)
			}
			if !totals.Expense.Equal(decimal.RequireFromString(tc.expense)) {
				t.Errorf("expense passed through incorrectly: %s", totals.Expense)
			}
		})
	}
}
