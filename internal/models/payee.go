package models

// Payee represents a transaction counterparty. Like categories, payees are
// created explicitly or implicitly during CSV import, and the display name
// is unique per user.
type Payee struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index:idx_payees_user_name,unique" json:"user_id"`
	Name         string `gorm:"not null;index:idx_payees_user_name,unique" json:"name"`
	MachineName  string `gorm:"not null" json:"machine_name"`
	CategoryHint string `json:"category_hint"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:PayeeID" json:"transactions,omitempty"`
}
