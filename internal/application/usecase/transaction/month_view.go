package transaction

import (
	"context"
	"time"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/application/usecase/aggregation"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	"github.com/pluto-finance/ledger/internal/domain/valueobject"
)

// MonthViewInput represents the input for the month view.
type MonthViewInput struct {
	Reference time.Time
	AccountID *uint // nil means all accounts
}

// MonthViewOutput represents the derived month view: day groups in
// date-descending order plus the month-level totals.
type MonthViewOutput struct {
	Window valueobject.MonthWindow
	Groups []entity.DayGroup
	Totals entity.Totals
}

// MonthViewUseCase derives the grouped-by-day view and totals for the
// calendar month containing the reference date.
type MonthViewUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewMonthViewUseCase creates a new MonthViewUseCase instance.
func NewMonthViewUseCase(transactionRepo adapter.TransactionRepository) *MonthViewUseCase {
	return &MonthViewUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute computes the month view.
func (uc *MonthViewUseCase) Execute(ctx context.Context, input MonthViewInput) (*MonthViewOutput, error) {
	window := valueobject.MonthWindowFor(input.Reference)
	filter := adapter.RangeFilter{
		AccountID: input.AccountID,
		Start:     window.Start,
		End:       window.End,
	}

	transactions, err := uc.transactionRepo.FindInRange(ctx, filter)
	if err != nil {
		return nil, err
	}

	income, err := uc.transactionRepo.SumByType(ctx, filter, entity.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	expense, err := uc.transactionRepo.SumByType(ctx, filter, entity.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return &MonthViewOutput{
		Window: window,
		Groups: aggregation.GroupByDay(transactions),
		Totals: aggregation.MonthlyTotals(income, expense),
	}, nil
}
