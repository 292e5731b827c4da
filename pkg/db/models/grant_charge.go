package models

import (
	"time"

	"github.com/google/uuid"
)

// GrantCharge is an immutable ledger entry recording how much of one pour was
// charged against one grant. A nil GrantID marks an unauthorized shortfall
// booked under the "record" policy.
type GrantCharge struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GrantID  *uuid.UUID `gorm:"column:grant_id;type:uuid;index"`
	DrinkID  uuid.UUID  `gorm:"column:drink_id;type:uuid;not null;index"`
	UserID   uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	VolumeML int64      `gorm:"column:volume_ml;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
