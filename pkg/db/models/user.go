package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/pkg/enums"
)

// User represents a drinker known to the taps. Physiology fields feed the BAC
// estimator; the accounting core never mutates users.
type User struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username  string       `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email     string       `gorm:"column:email;type:text;not null;default:''"`
	Gender    enums.Gender `gorm:"column:gender;type:gender;not null"`
	WeightKg  float64      `gorm:"column:weight_kg;not null;default:82"`
	Admin     bool         `gorm:"column:admin;not null;default:false"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
