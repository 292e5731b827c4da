package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kegworks/taproom-backend/pkg/enums"
)

// DefaultKegVolumeML is a full half-barrel (15.5 US gallons) in milliliters.
const DefaultKegVolumeML int64 = 58673

// Keg describes one tapped keg. Read-only from the accounting core's
// perspective; the ABV feeds the BAC estimator.
type Keg struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullVolumeML int64           `gorm:"column:full_volume_ml;not null;default:58673"`
	BeerName     string          `gorm:"column:beer_name;type:text;not null;default:''"`
	ABV          float64         `gorm:"column:abv;not null;default:4.5"`
	Description  string          `gorm:"column:description;type:text;not null;default:''"`
	Status       enums.KegStatus `gorm:"column:status;type:keg_status;not null;default:'online'"`
	OrigCost     decimal.Decimal `gorm:"column:orig_cost;type:numeric(12,2);not null;default:0"`
	CaloriesPerOz float64        `gorm:"column:calories_per_oz;not null;default:0"`
	StartDate    *time.Time      `gorm:"column:start_date"`
	EndDate      *time.Time      `gorm:"column:end_date"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
