package models

import "fmt"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
)

// Account represents a financial account. Balances are stored in minor
// currency units (cents/paise) to avoid floating-point drift.
type Account struct {
	Base
	UserID         string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string      `gorm:"not null" json:"name"`
	Type           AccountType `gorm:"not null" json:"type"`
	Currency       string      `gorm:"not null;default:'USD'" json:"currency"`
	InitialBalance int64       `gorm:"not null;default:0" json:"initial_balance"`
	Balance        int64       `gorm:"not null;default:0" json:"balance"`
	IsActive       bool        `gorm:"default:true" json:"is_active"`

	// Credit card billing settings. Rates are decimal fractions in [0,1].
	BillGenerationDay  int     `json:"bill_generation_day,omitempty"`
	BillDueDay         int     `json:"bill_due_day,omitempty"`
	InterestRate       float64 `json:"interest_rate,omitempty"`
	MinimumPaymentRate float64 `json:"minimum_payment_rate,omitempty"`

	// Relationships
	Transactions []Transaction    `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
	Bills        []CreditCardBill `gorm:"foreignKey:AccountID" json:"bills,omitempty"`
}

// IsCreditCard reports whether the account carries billing settings.
func (a *Account) IsCreditCard() bool {
	return a.Type == AccountTypeCreditCard
}

// ValidateBillingSettings checks credit card billing configuration and
// returns one problem string per violated constraint. A due day less than
// or equal to the generation day is legal: the due date then rolls into
// the month after the billing period ends.
func (a *Account) ValidateBillingSettings() []string {
	var problems []string
	if a.BillGenerationDay < 1 || a.BillGenerationDay > 31 {
		problems = append(problems, fmt.Sprintf("bill_generation_day must be between 1 and 31, got %d", a.BillGenerationDay))
	}
	if a.BillDueDay < 1 || a.BillDueDay > 31 {
		problems = append(problems, fmt.Sprintf("bill_due_day must be between 1 and 31, got %d", a.BillDueDay))
	}
	if a.BillGenerationDay >= 1 && a.BillDueDay >= 1 && a.BillDueDay == a.BillGenerationDay {
		problems = append(problems, "bill_due_day must not equal bill_generation_day")
	}
	if a.InterestRate < 0 || a.InterestRate > 1 {
		problems = append(problems, fmt.Sprintf("interest_rate must be a fraction between 0 and 1, got %g", a.InterestRate))
	}
	if a.MinimumPaymentRate < 0 || a.MinimumPaymentRate > 1 {
		problems = append(problems, fmt.Sprintf("minimum_payment_rate must be a fraction between 0 and 1, got %g", a.MinimumPaymentRate))
	}
	return problems
}
