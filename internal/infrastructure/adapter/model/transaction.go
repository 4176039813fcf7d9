package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger entries. The table
// is append-only; rows are never updated or deleted.
type Transaction struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	UUID            string          `gorm:"uniqueIndex;not null;size:36"`
	TransactionType string          `gorm:"not null;size:32;index"`
	FromAccountID   *uint64         `gorm:"index"`
	ToAccountID     *uint64         `gorm:"index"`
	Amount          decimal.Decimal `gorm:"type:numeric(20,3);not null"`
	Confirmed       bool            `gorm:"not null;default:true"`
	Description     string          `gorm:"size:512"`
	Metadata        string          `gorm:"type:jsonb"`
	TaxCategory     string          `gorm:"size:16"`
	CreatedAt       time.Time       `gorm:"not null;index"`

	FromAccount *BankAccount `gorm:"foreignKey:FromAccountID;references:ID"`
	ToAccount   *BankAccount `gorm:"foreignKey:ToAccountID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
