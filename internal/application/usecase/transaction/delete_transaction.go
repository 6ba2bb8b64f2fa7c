package transaction

import (
	"context"
	"fmt"

	"github.com/pluto-finance/ledger/internal/application/adapter"
)

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute deletes the transaction with the given ID.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, id uint) error {
	transaction, err := uc.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, transaction); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
