// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/application/adapter"
	"github.com/pluto-finance/ledger/internal/domain/entity"
	domainerror "github.com/pluto-finance/ledger/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Title       string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Type        entity.TransactionType
	Description string
	AccountID   uint
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateTransactionInput(input.Amount, input.Type, input.AccountID); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.FindByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.Title,
		input.Amount,
		input.Category,
		input.Date,
		input.Type,
		input.Description,
		input.AccountID,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// validateTransactionInput checks the invariants shared by create and
// update: a recognized type, a strictly positive amount (sign is carried by
// the type, never by the stored value) and an owning account.
func validateTransactionInput(amount decimal.Decimal, transactionType entity.TransactionType, accountID uint) error {
	if !isValidTransactionType(transactionType) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if accountID == 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNoAccount,
			"transaction must reference an account",
			domainerror.ErrTransactionAccountRequired,
		)
	}
	return nil
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}
