package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount represents the database model for accounts
type BankAccount struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	UUID          string          `gorm:"uniqueIndex;not null;size:36"`
	AccountNumber string          `gorm:"uniqueIndex;not null;size:32"`
	HolderType    string          `gorm:"not null;size:16;index:idx_holder"`
	HolderID      uint64          `gorm:"not null;index:idx_holder"`
	Balance       decimal.Decimal `gorm:"type:numeric(20,3);not null"`
	IsFrozen      bool            `gorm:"not null;default:false"`
	IsDeleted     bool            `gorm:"not null;default:false"`

	PinHash           string `gorm:"size:255"`
	PinFailedAttempts int    `gorm:"not null;default:0"`
	PinLockedUntil    *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for BankAccount
func (BankAccount) TableName() string {
	return "bank_accounts"
}
