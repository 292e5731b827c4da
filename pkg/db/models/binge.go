package models

import (
	"time"

	"github.com/google/uuid"
)

// Binge is one contiguous drinking session. Only the most recent binge per
// user may be extended; older binges are settled history.
type Binge struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	StartDrinkID uuid.UUID `gorm:"column:start_drink_id;type:uuid;not null"`
	EndDrinkID   uuid.UUID `gorm:"column:end_drink_id;type:uuid;not null"`
	VolumeML     int64     `gorm:"column:volume_ml;not null;default:0"`
	StartTime    time.Time `gorm:"column:start_time;not null"`
	EndTime      time.Time `gorm:"column:end_time;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
