// Package transactionlist implements the state controller behind the
// transaction list screen: it owns the current month window and account
// selection, keeps the derived day groups and totals consistent with
// storage, and publishes immutable snapshots to its observers.
package transactionlist

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/application/stream"
	"github.com/pluto-finance/ledger/internal/application/usecase/aggregation"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	"github.com/pluto-finance/ledger/internal/domain/valueobject"
)

// Snapshot is the immutable state published to the screen. Each emission
// replaces the previous snapshot wholesale; readers never observe partial
// mutation. Err carries the latest storage fault, if any — the remaining
// fields keep the last good data.
type Snapshot struct {
	Reference    time.Time
	Window       valueobject.MonthWindow
	AccountID    *uint
	Transactions []*entity.TransactionWithAccount
	Groups       []entity.DayGroup
	Totals       entity.Totals
	Accounts     []*entity.Account
	Err          error
}

// Controller owns the transaction list screen state. It is the sole mutator
// of its snapshot; all derived data flows in through storage streams.
type Controller struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	snapshot      Snapshot
	reference     time.Time
	accountID     *uint
	accountPicked bool
	scopeCancel   context.CancelFunc
	scopeGen      uint64

	out chan Snapshot
}

// monthData is the combined emission of the three scoped storage streams.
type monthData struct {
	transactions []*entity.TransactionWithAccount
	income       decimal.Decimal
	expense      decimal.Decimal
}

// New creates a list controller viewing the month that contains reference.
// It immediately subscribes to the accounts stream and to the range-scoped
// transaction and sum streams; the first account (by insertion order) is
// selected once accounts become available if none was chosen before.
// The controller runs until ctx is cancelled or Close is called.
func New(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	reference time.Time,
) *Controller {
	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		ctx:             ctx,
		cancel:          cancel,
		reference:       reference,
		out:             make(chan Snapshot, 1),
	}
	c.snapshot = Snapshot{
		Reference: reference,
		Window:    valueobject.MonthWindowFor(reference),
	}

	go c.watchAccounts(accountRepo.WatchAll(ctx))

	c.mu.Lock()
	c.resubscribe()
	c.mu.Unlock()

	return c
}

// Snapshots returns the snapshot channel. It holds only the latest
// snapshot: a slow observer skips intermediate states and always catches up
// to the most recent one.
func (c *Controller) Snapshots() <-chan Snapshot {
	return c.out
}

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Close cancels every active subscription. No emission of a cancelled
// subscription is applied afterwards.
func (c *Controller) Close() {
	c.cancel()
}

// SelectAccount scopes the view to a single account and refreshes all
// derived data.
func (c *Controller) SelectAccount(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountID = &id
	c.accountPicked = true
	c.resubscribe()
}

// ClearAccount removes the account filter: the view covers all accounts.
func (c *Controller) ClearAccount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountID = nil
	c.accountPicked = true
	c.resubscribe()
}

// PreviousMonth moves the view one calendar month back.
func (c *Controller) PreviousMonth() {
	c.shiftMonth(-1)
}

// NextMonth moves the view one calendar month forward.
func (c *Controller) NextMonth() {
	c.shiftMonth(1)
}

func (c *Controller) shiftMonth(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reference = valueobject.ShiftMonth(c.reference, delta)
	c.resubscribe()
}

// DeleteTransaction requests deletion from storage. Local state is not
// mutated here: the refreshed list and totals arrive with the next stream
// emission, so consistency is eventual within the process.
func (c *Controller) DeleteTransaction(ctx context.Context, transaction *entity.Transaction) error {
	return c.transactionRepo.Delete(ctx, transaction)
}

// resubscribe tears down the current month/account-scoped streams and
// starts a fresh combined subscription for the current parameters.
// Callers must hold c.mu.
func (c *Controller) resubscribe() {
	if c.scopeCancel != nil {
		c.scopeCancel()
	}
	scopeCtx, scopeCancel := context.WithCancel(c.ctx)
	c.scopeCancel = scopeCancel
	c.scopeGen++
	gen := c.scopeGen

	window := valueobject.MonthWindowFor(c.reference)
	filter := adapter.RangeFilter{
		AccountID: c.accountID,
		Start:     window.Start,
		End:       window.End,
	}

	c.snapshot.Reference = c.reference
	c.snapshot.Window = window
	c.snapshot.AccountID = c.accountID
	c.publishLocked()

	combined := stream.CombineLatest3(
		scopeCtx,
		c.transactionRepo.WatchInRange(scopeCtx, filter),
		c.transactionRepo.WatchSumByType(scopeCtx, filter, entity.TransactionTypeIncome),
		c.transactionRepo.WatchSumByType(scopeCtx, filter, entity.TransactionTypeExpense),
		func(txs []*entity.TransactionWithAccount, income, expense decimal.Decimal) monthData {
			return monthData{transactions: txs, income: income, expense: expense}
		},
	)

	go c.consumeScope(scopeCtx, gen, combined)
}

// consumeScope applies combined emissions to the snapshot for as long as
// the scope is current. The generation check guarantees that an emission
// raced with a re-subscription is never applied to the newer scope's state.
func (c *Controller) consumeScope(ctx context.Context, gen uint64, combined *stream.Stream[monthData]) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-combined.Values():
			c.mu.Lock()
			if gen == c.scopeGen {
				c.snapshot.Transactions = data.transactions
				c.snapshot.Groups = aggregation.GroupByDay(data.transactions)
				c.snapshot.Totals = aggregation.MonthlyTotals(data.income, data.expense)
				c.snapshot.Err = nil
				c.publishLocked()
			}
			c.mu.Unlock()
		case err := <-combined.Errs():
			c.mu.Lock()
			if gen == c.scopeGen {
				c.snapshot.Err = err
				c.publishLocked()
			}
			c.mu.Unlock()
		}
	}
}

// watchAccounts keeps the accounts list current for the controller's
// lifetime. The first non-empty emission selects the first account by
// insertion order when the user has not chosen one yet — an explicit
// reaction to the stream, not constructor timing.
func (c *Controller) watchAccounts(accounts *stream.Stream[[]*entity.Account]) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case list := <-accounts.Values():
			c.mu.Lock()
			c.snapshot.Accounts = list
			if !c.accountPicked && len(list) > 0 {
				id := list[0].ID
				c.accountID = &id
				c.accountPicked = true
				c.resubscribe()
			} else {
				c.publishLocked()
			}
			c.mu.Unlock()
		case err := <-accounts.Errs():
			c.mu.Lock()
			c.snapshot.Err = err
			c.publishLocked()
			c.mu.Unlock()
		}
	}
}

// publishLocked pushes the current snapshot to the output channel with
// latest-value-wins semantics. Callers must hold c.mu.
func (c *Controller) publishLocked() {
	snap := c.snapshot
	for {
		select {
		case c.out <- snap:
			return
		default:
			select {
			case <-c.out:
			default:
			}
		}
	}
}
