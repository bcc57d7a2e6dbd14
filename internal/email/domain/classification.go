package domain

import "time"

// Classification links one email to one category. At most one per email,
// enforced by the unique index plus upsert-style logic in the usecase.
// Confidence is 1.0 for manual assignments and the similarity-derived mean
// for automatic ones.
type Classification struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	EmailID    string    `json:"email_id" gorm:"uniqueIndex;not null"`
	CategoryID string    `json:"category_id" gorm:"index;not null"`
	Confidence float64   `json:"confidence" gorm:"not null"`
	IsManual   bool      `json:"is_manual" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
