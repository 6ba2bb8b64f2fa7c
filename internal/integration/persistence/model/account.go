// Package model defines database models for persistence layer.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/pluto-finance/ledger/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"`
	Name           string          `gorm:"type:varchar(255);not null"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	// Owned transactions; constraint cascades deletes to them.
	Transactions []TransactionModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:             m.ID,
		Name:           m.Name,
		InitialBalance: m.InitialBalance,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:             account.ID,
		Name:           account.Name,
		InitialBalance: account.InitialBalance,
	}
}
