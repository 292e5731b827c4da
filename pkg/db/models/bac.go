package models

import (
	"time"

	"github.com/google/uuid"
)

// BAC is one append-only blood-alcohol estimate, written once per processed
// drink. The row with the greatest RecTime is the user's current estimate.
type BAC struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	DrinkID uuid.UUID `gorm:"column:drink_id;type:uuid;not null"`
	RecTime time.Time `gorm:"column:rec_time;not null;index"`
	Value   float64   `gorm:"column:value;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the short plural used by the schema.
func (BAC) TableName() string {
	return "bacs"
}
