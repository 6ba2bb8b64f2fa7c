package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
)

// UpdateAccountInput represents the input for account update.
type UpdateAccountInput struct {
	ID             uint
	Name           string
	InitialBalance decimal.Decimal
}

// UpdateAccountOutput represents the output of account update.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.ErrAccountNameRequired
	}

	account, err := uc.accountRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.InitialBalance = input.InitialBalance
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountOutput{Account: account}, nil
}
