package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/application/stream"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
	"github.com/pluto-finance/ledger/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(store *Store) adapter.TransactionRepository {
	return &transactionRepository{
		store: store,
	}
}

// Create inserts a new transaction and assigns its ID.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	if err := r.store.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return err
	}
	transaction.ID = transactionModel.ID
	r.store.notifier.broadcast()
	return nil
}

// Update updates an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.store.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"title":       transactionModel.Title,
			"amount":      transactionModel.Amount,
			"category":    transactionModel.Category,
			"date":        transactionModel.Date,
			"type":        transactionModel.Type,
			"description": transactionModel.Description,
			"account_id":  transactionModel.AccountID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	r.store.notifier.broadcast()
	return nil
}

// Delete removes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, transaction *entity.Transaction) error {
	result := r.store.db.WithContext(ctx).
		Where("id = ?", transaction.ID).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	r.store.notifier.broadcast()
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.store.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindInRange retrieves transactions matching the filter, joined with
// their accounts, ordered by date descending. Both range bounds are
// inclusive at day granularity.
func (r *transactionRepository) FindInRange(ctx context.Context, filter adapter.RangeFilter) ([]*entity.TransactionWithAccount, error) {
	query := r.store.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("date >= ? AND date <= ?", filter.Start, endOfDay(filter))

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Account").
		Order("date DESC, id DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithAccount, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithAccount()
	}
	return transactions, nil
}

// SumByType totals the amounts of the given type matching the filter.
func (r *transactionRepository) SumByType(ctx context.Context, filter adapter.RangeFilter, transactionType entity.TransactionType) (decimal.Decimal, error) {
	query := r.store.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("type = ?", string(transactionType)).
		Where("date >= ? AND date <= ?", filter.Start, endOfDay(filter))

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}

	var sumResult struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) as total").Scan(&sumResult).Error; err != nil {
		return decimal.Zero, err
	}
	return sumResult.Total, nil
}

// WatchByID streams a single transaction.
func (r *transactionRepository) WatchByID(ctx context.Context, id uint) *stream.Stream[*entity.Transaction] {
	return stream.Query(ctx, r.store.notifier.subscribe(ctx), func(ctx context.Context) (*entity.Transaction, error) {
		return r.FindByID(ctx, id)
	})
}

// WatchInRange streams the date-descending transaction list for the filter.
func (r *transactionRepository) WatchInRange(ctx context.Context, filter adapter.RangeFilter) *stream.Stream[[]*entity.TransactionWithAccount] {
	return stream.Query(ctx, r.store.notifier.subscribe(ctx), func(ctx context.Context) ([]*entity.TransactionWithAccount, error) {
		return r.FindInRange(ctx, filter)
	})
}

// WatchSumByType streams the per-type total for the filter.
func (r *transactionRepository) WatchSumByType(ctx context.Context, filter adapter.RangeFilter, transactionType entity.TransactionType) *stream.Stream[decimal.Decimal] {
	return stream.Query(ctx, r.store.notifier.subscribe(ctx), func(ctx context.Context) (decimal.Decimal, error) {
		return r.SumByType(ctx, filter, transactionType)
	})
}

// endOfDay widens the filter's End instant to the last moment of its
// calendar day, so transactions stored with a time-of-day on the window's
// final date still fall inside the inclusive range.
func endOfDay(filter adapter.RangeFilter) time.Time {
	return filter.End.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
