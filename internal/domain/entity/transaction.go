// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a single financial transaction in the ledger.
// The amount is always stored positive; the sign of its contribution to
// any aggregate is carried by Type.
type Transaction struct {
	ID          uint
	Title       string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Type        TransactionType
	Description string
	AccountID   uint
}

// NewTransaction creates a new Transaction entity. The ID is assigned by
// storage on insert.
func NewTransaction(
	title string,
	amount decimal.Decimal,
	category string,
	date time.Time,
	transactionType TransactionType,
	description string,
	accountID uint,
) *Transaction {
	return &Transaction{
		Title:       title,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Type:        transactionType,
		Description: description,
		AccountID:   accountID,
	}
}

// TransactionWithAccount represents a transaction joined with its owning
// account.
type TransactionWithAccount struct {
	Transaction *Transaction
	Account     *Account
}

// DayGroup represents the transactions of one calendar day, in display
// order, with the day's net total. Total uses the daily sign convention:
// expenses add, income subtracts, so a day with more spending than income
// shows a positive total.
type DayGroup struct {
	Day          time.Time
	Total        decimal.Decimal
	Transactions []*TransactionWithAccount
}

// Totals represents the aggregated income, expense and net amounts for a
// month window. Net is always income minus expense, the inverse sign
// convention of DayGroup.Total.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}
