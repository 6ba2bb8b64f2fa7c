package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/application/stream"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
	"github.com/pluto-finance/ledger/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	store *Store
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(store *Store) adapter.AccountRepository {
	return &accountRepository{
		store: store,
	}
}

// Create inserts a new account and assigns its ID.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	if err := r.store.db.WithContext(ctx).Create(accountModel).Error; err != nil {
		return err
	}
	account.ID = accountModel.ID
	r.store.notifier.broadcast()
	return nil
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := r.store.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"name":            account.Name,
			"initial_balance": account.InitialBalance,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	r.store.notifier.broadcast()
	return nil
}

// Delete removes an account and all of its transactions in one database
// transaction.
func (r *accountRepository) Delete(ctx context.Context, account *entity.Account) error {
	err := r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).
			Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", account.ID).
			Delete(&model.AccountModel{}).Error
	})
	if err != nil {
		return err
	}
	r.store.notifier.broadcast()
	return nil
}

// FindAll retrieves all accounts in insertion order.
func (r *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.store.db.WithContext(ctx).
		Order("id ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i, am := range accountModels {
		accounts[i] = am.ToEntity()
	}
	return accounts, nil
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.store.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// WatchAll streams the account list in insertion order.
func (r *accountRepository) WatchAll(ctx context.Context) *stream.Stream[[]*entity.Account] {
	return stream.Query(ctx, r.store.notifier.subscribe(ctx), r.FindAll)
}

// WatchByID streams a single account.
func (r *accountRepository) WatchByID(ctx context.Context, id uint) *stream.Stream[*entity.Account] {
	return stream.Query(ctx, r.store.notifier.subscribe(ctx), func(ctx context.Context) (*entity.Account, error) {
		return r.FindByID(ctx, id)
	})
}
