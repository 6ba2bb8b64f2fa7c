package transaction

import (
	"context"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// GetTransactionUseCase handles fetching a single transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the transaction with the given ID.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, id uint) (*entity.Transaction, error) {
	return uc.transactionRepo.FindByID(ctx, id)
}
