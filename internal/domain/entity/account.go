package entity

import "github.com/shopspring/decimal"

// Account represents a user's account (e.g., Cash, Bank, Credit Card).
type Account struct {
	ID             uint
	Name           string
	InitialBalance decimal.Decimal
}

// NewAccount creates a new Account entity. The ID is assigned by storage
// on insert.
func NewAccount(name string, initialBalance decimal.Decimal) *Account {
	return &Account{
		Name:           name,
		InitialBalance: initialBalance,
	}
}
