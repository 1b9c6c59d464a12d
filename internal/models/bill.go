package models

import (
	"math"
	"time"
)

// BillStatus represents the lifecycle status of a credit card bill
type BillStatus string

const (
	BillStatusGenerated BillStatus = "generated"
	// BillStatusSent is reserved for an external notification collaborator;
	// no transition in this codebase produces it.
	BillStatusSent    BillStatus = "sent"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
	BillStatusPartial BillStatus = "partial"
)

// CreditCardBill represents a generated bill for a credit card account over
// one billing period. Status is derived from the payment fields and the due
// date, never set independently. One bill per (account, period) pair.
type CreditCardBill struct {
	Base
	UserID         string     `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID      string     `gorm:"type:uuid;not null;index:idx_bills_account_period,unique" json:"account_id"`
	PeriodStart    time.Time  `gorm:"not null;index:idx_bills_account_period,unique" json:"period_start"`
	PeriodEnd      time.Time  `gorm:"not null;index:idx_bills_account_period,unique" json:"period_end"`
	GenerationDate time.Time  `gorm:"not null" json:"generation_date"`
	DueDate        time.Time  `gorm:"not null" json:"due_date"`
	BillAmount     int64      `gorm:"type:bigint;not null" json:"bill_amount"`
	IsPaid         bool       `gorm:"default:false" json:"is_paid"`
	PaidAmount     *int64     `json:"paid_amount,omitempty"`
	PaidDate       *time.Time `json:"paid_date,omitempty"`
	Status         BillStatus `gorm:"not null;default:'generated'" json:"status"`
	Notes          string     `json:"notes"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// DeriveStatus computes the bill status from the payment state and due date:
// paid when the paid amount covers the bill, partial when it does not,
// overdue when unpaid past the due date, generated otherwise. Sent is left
// untouched for unpaid bills so an external notifier's state survives reads.
func (b *CreditCardBill) DeriveStatus(now time.Time) BillStatus {
	if b.IsPaid {
		if b.PaidAmount != nil && *b.PaidAmount < b.BillAmount {
			return BillStatusPartial
		}
		return BillStatusPaid
	}
	if now.After(b.DueDate) {
		return BillStatusOverdue
	}
	if b.Status == BillStatusSent {
		return BillStatusSent
	}
	return BillStatusGenerated
}

// MinimumPayment returns the informational minimum payment for the bill,
// rounded up to a whole minor currency unit.
func (b *CreditCardBill) MinimumPayment(rate float64) int64 {
	if b.BillAmount <= 0 || rate <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(b.BillAmount) * rate))
}
