package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(255)"`
	Date        time.Time       `gorm:"not null;index"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Description string          `gorm:"type:text"`
	AccountID   uint            `gorm:"not null;index"`

	// Owning account (not loaded by default, use Preload or Joins).
	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		Title:       m.Title,
		Amount:      m.Amount,
		Category:    m.Category,
		Date:        m.Date,
		Type:        entity.TransactionType(m.Type),
		Description: m.Description,
		AccountID:   m.AccountID,
	}
}

// ToEntityWithAccount converts a TransactionModel with its Account to a
// TransactionWithAccount entity.
func (m *TransactionModel) ToEntityWithAccount() *entity.TransactionWithAccount {
	result := &entity.TransactionWithAccount{
		Transaction: m.ToEntity(),
	}
	if m.Account != nil {
		result.Account = m.Account.ToEntity()
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Title:       transaction.Title,
		Amount:      transaction.Amount,
		Category:    transaction.Category,
		Date:        transaction.Date,
		Type:        string(transaction.Type),
		Description: transaction.Description,
		AccountID:   transaction.AccountID,
	}
}
