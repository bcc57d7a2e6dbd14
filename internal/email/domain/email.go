package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Vector stores an embedding as a JSON array in a text column so the labeled
// corpus can be read back without a vector-capable database.
type Vector []float64

// Value implements driver.Valuer
func (v Vector) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	var bytes []byte
	switch val := value.(type) {
	case []byte:
		bytes = val
	case string:
		bytes = []byte(val)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*v = nil
		return nil
	}
	return json.Unmarshal(bytes, v)
}

// Email is a message pulled from the mail source. ExternalID is the
// provider-assigned message id and is the dedup key for sync. Embedding is
// attached at sync time or by the backfill operation and is otherwise never
// mutated.
type Email struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ExternalID string    `json:"external_id" gorm:"uniqueIndex;not null"`
	Subject    string    `json:"subject" gorm:"not null"`
	From       string    `json:"from" gorm:"column:sender;not null"`
	To         string    `json:"to" gorm:"column:recipient;not null"`
	Body       string    `json:"body"`
	Snippet    string    `json:"snippet"`
	ReceivedAt time.Time `json:"received_at" gorm:"not null"`
	Embedding  Vector    `json:"-" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`

	Classification *Classification `json:"classification,omitempty" gorm:"foreignKey:EmailID"`
}

// HasEmbedding reports whether an embedding has been computed for this email.
func (e *Email) HasEmbedding() bool {
	return len(e.Embedding) > 0
}
