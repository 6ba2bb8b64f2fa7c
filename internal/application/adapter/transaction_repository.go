package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/application/stream"
	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// RangeFilter scopes transaction queries to an optional account and an
// inclusive [Start, End] date range. A nil AccountID means all accounts.
type RangeFilter struct {
	AccountID *uint
	Start     time.Time
	End       time.Time
}

// TransactionRepository defines the interface for transaction persistence
// operations.
//
// Watch methods return live streams that emit the current query result
// immediately and re-emit it whenever any write operation commits. Streams
// are released by cancelling the supplied context.
type TransactionRepository interface {
	// Create inserts a new transaction and assigns its ID.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Transaction, error)

	// FindInRange retrieves transactions matching the filter, joined with
	// their accounts, ordered by date descending.
	FindInRange(ctx context.Context, filter RangeFilter) ([]*entity.TransactionWithAccount, error)

	// SumByType totals the amounts of the given type matching the filter.
	// Returns zero when no rows match.
	SumByType(ctx context.Context, filter RangeFilter, transactionType entity.TransactionType) (decimal.Decimal, error)

	// WatchByID streams a single transaction.
	WatchByID(ctx context.Context, id uint) *stream.Stream[*entity.Transaction]

	// WatchInRange streams the date-descending transaction list for the filter.
	WatchInRange(ctx context.Context, filter RangeFilter) *stream.Stream[[]*entity.TransactionWithAccount]

	// WatchSumByType streams the per-type total for the filter.
	WatchSumByType(ctx context.Context, filter RangeFilter, transactionType entity.TransactionType) *stream.Stream[decimal.Decimal]
}
