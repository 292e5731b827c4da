package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kegworks/taproom-backend/pkg/enums"
)

// Policy is an admin-managed pricing rule. Immutable once created; many
// grants may reference one policy.
type Policy struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type         enums.PolicyType `gorm:"column:type;type:policy_type;not null"`
	UnitCost     decimal.Decimal  `gorm:"column:unit_cost;type:numeric(12,4);not null;default:0"`
	UnitVolumeML int64            `gorm:"column:unit_volume_ml;not null;default:0"`
	Description  string           `gorm:"column:description;type:text;not null;default:''"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}
