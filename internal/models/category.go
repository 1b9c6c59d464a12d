package models

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a machine name from a display name:
// lowercased, non-alphanumeric runs collapsed to single underscores.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}

// Category represents a transaction category. MachineName is the slug
// derived from Name; both are unique per user.
type Category struct {
	Base
	UserID      string `gorm:"type:uuid;not null;index:idx_categories_user_name,unique" json:"user_id"`
	Name        string `gorm:"not null;index:idx_categories_user_name,unique" json:"name"`
	MachineName string `gorm:"not null" json:"machine_name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
