// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/pluto-finance/ledger/internal/application/stream"
	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
//
// Watch methods return live streams that emit the current query result
// immediately and re-emit it whenever any write operation commits. Streams
// are released by cancelling the supplied context.
type AccountRepository interface {
	// Create inserts a new account and assigns its ID.
	Create(ctx context.Context, account *entity.Account) error

	// Update updates an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account and cascades deletion of its transactions.
	Delete(ctx context.Context, account *entity.Account) error

	// FindAll retrieves all accounts in insertion order.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Account, error)

	// WatchAll streams the account list in insertion order.
	WatchAll(ctx context.Context) *stream.Stream[[]*entity.Account]

	// WatchByID streams a single account.
	WatchByID(ctx context.Context, id uint) *stream.Stream[*entity.Account]
}
