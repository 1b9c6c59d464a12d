package models

import "time"

// Budget represents a monthly spending limit for a category. Month is
// normalized to the first of the month (UTC); one budget exists per
// (user, category, month). The spent amount is computed on read, never
// stored.
type Budget struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;index:idx_budgets_user_cat_month,unique" json:"user_id"`
	CategoryID string    `gorm:"type:uuid;not null;index:idx_budgets_user_cat_month,unique" json:"category_id"`
	Month      time.Time `gorm:"not null;index:idx_budgets_user_cat_month,unique" json:"month"`
	Amount     int64     `gorm:"type:bigint;not null" json:"amount"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// NormalizeMonth truncates a date to the first instant of its month in UTC.
func NormalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
