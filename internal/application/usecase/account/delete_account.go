package account

import (
	"context"
	"fmt"

	"github.com/pluto-finance/ledger/internal/application/adapter"
)

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute deletes the account with the given ID. Deleting an account also
// deletes every transaction that belongs to it.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, id uint) error {
	account, err := uc.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, account); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
