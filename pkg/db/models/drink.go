package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/pkg/enums"
)

// Drink is one completed pour event. Created exactly once per pour and
// immutable afterwards except for the status flip when voiding.
type Drink struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Ticks     int64             `gorm:"column:ticks;not null;default:0"`
	VolumeML  int64             `gorm:"column:volume_ml;not null;default:0"`
	StartTime time.Time         `gorm:"column:start_time;not null"`
	EndTime   time.Time         `gorm:"column:end_time;not null;index"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	KegID     uuid.UUID         `gorm:"column:keg_id;type:uuid;not null"`
	Status    enums.DrinkStatus `gorm:"column:status;type:drink_status;not null;default:'valid'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
