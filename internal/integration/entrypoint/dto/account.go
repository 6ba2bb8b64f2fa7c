package dto

import (
	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=255"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=255"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts an Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Name:           account.Name,
		InitialBalance: account.InitialBalance.String(),
	}
}

// ToAccountListResponse converts a slice of Account entities to an
// AccountListResponse.
func ToAccountListResponse(accounts []*entity.Account) AccountListResponse {
	out := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		out[i] = ToAccountResponse(account)
	}
	return AccountListResponse{Accounts: out}
}
