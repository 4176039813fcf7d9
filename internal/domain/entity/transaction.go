package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded in the ledger
const (
	TransactionTypeTransfer = "transfer"
	TransactionTypePayment  = "payment"
	TransactionTypeTax      = "tax"
	TransactionTypeAdminAdj = "admin_adj"
	TransactionTypeSalary   = "salary"
	TransactionTypeGiftcard = "giftcard"
	TransactionTypeRefund   = "refund"
)

// Transaction is a single append-only ledger entry. Amounts are always
// positive; direction is carried by the from/to account references.
type Transaction struct {
	ID              uint64
	UUID            string
	TransactionType string
	FromAccountID   *uint64
	ToAccountID     *uint64
	Amount          decimal.Decimal
	Confirmed       bool
	Description     string
	Metadata        map[string]any
	TaxCategory     string
	CreatedAt       time.Time
}

// NewTransaction builds a confirmed ledger entry for a completed movement.
func NewTransaction(uuid, transactionType string, from, to *uint64, amount decimal.Decimal, description string) *Transaction {
	return &Transaction{
		UUID:            uuid,
		TransactionType: transactionType,
		FromAccountID:   from,
		ToAccountID:     to,
		Amount:          amount,
		Confirmed:       true,
		Description:     description,
		Metadata:        map[string]any{},
	}
}
