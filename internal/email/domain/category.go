package domain

import "time"

// Category is a user-defined label that emails get classified into.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	Color       string    `json:"color" gorm:"not null"` // Hex color code
	Icon        string    `json:"icon" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryStats is a category with its share of classified emails, for the
// dashboard.
type CategoryStats struct {
	Category
	EmailCount int64   `json:"email_count"`
	Percentage float64 `json:"percentage"`
}
