package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// TransactionStatus represents the lifecycle status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction represents a financial transaction. The row has two shapes:
// deposits and withdrawals populate AccountID (plus optional category and
// payee), transfers populate FromAccountID and ToAccountID and nothing else.
// Exactly one of the two shapes is ever populated; the service constructors
// enforce this. Amounts are positive minor currency units.
type Transaction struct {
	Base
	UserID string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Type   TransactionType   `gorm:"not null" json:"type"`
	Status TransactionStatus `gorm:"not null;default:'completed'" json:"status"`
	Amount int64             `gorm:"type:bigint;not null" json:"amount"`
	Date   time.Time         `gorm:"not null;index" json:"date"`
	Notes  string            `json:"notes"`

	// Deposit/withdrawal shape
	AccountID  *string `gorm:"type:uuid;index" json:"account_id,omitempty"`
	CategoryID *string `gorm:"type:uuid;index" json:"category_id,omitempty"`
	PayeeID    *string `gorm:"type:uuid;index" json:"payee_id,omitempty"`

	// Transfer shape
	FromAccountID *string `gorm:"type:uuid;index" json:"from_account_id,omitempty"`
	ToAccountID   *string `gorm:"type:uuid;index" json:"to_account_id,omitempty"`

	// Relationships
	Account     *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	FromAccount *Account  `gorm:"foreignKey:FromAccountID" json:"from_account,omitempty"`
	ToAccount   *Account  `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Payee       *Payee    `gorm:"foreignKey:PayeeID" json:"payee,omitempty"`
}

// IsTransfer reports whether the transaction carries the transfer shape.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// TouchesAccount reports whether the transaction references the given
// account on any side.
func (t *Transaction) TouchesAccount(accountID string) bool {
	if t.AccountID != nil && *t.AccountID == accountID {
		return true
	}
	if t.FromAccountID != nil && *t.FromAccountID == accountID {
		return true
	}
	if t.ToAccountID != nil && *t.ToAccountID == accountID {
		return true
	}
	return false
}
