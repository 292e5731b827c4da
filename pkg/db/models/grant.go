package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/pkg/enums"
)

// Grant authorizes a user to pour under a policy until its expiration rule
// exhausts it. Status moves active->expired exactly once and never back.
type Grant struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	PolicyID   uuid.UUID             `gorm:"column:policy_id;type:uuid;not null"`
	Expiration enums.GrantExpiration `gorm:"column:expiration;type:grant_expiration;not null;default:'volume'"`
	Status     enums.GrantStatus     `gorm:"column:status;type:grant_status;not null;default:'active'"`

	ExpVolumeML int64      `gorm:"column:exp_volume_ml;not null;default:0"`
	ExpTime     *time.Time `gorm:"column:exp_time"`
	ExpDrinks   int64      `gorm:"column:exp_drinks;not null;default:0"`

	TotalVolumeML int64 `gorm:"column:total_volume_ml;not null;default:0"`
	TotalDrinks   int64 `gorm:"column:total_drinks;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
