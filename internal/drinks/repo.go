package drinks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Repository manages pour event rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, drink *models.Drink) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Drink, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DrinkStatus) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Drink, error)
	ListByKeg(ctx context.Context, kegID uuid.UUID, limit int) ([]models.Drink, error)
	// PouredVolumeByKeg sums valid pour volume against one keg.
	PouredVolumeByKeg(ctx context.Context, kegID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a drink repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, drink *models.Drink) error {
	return r.db.WithContext(ctx).Create(drink).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	var drink models.Drink
	if err := r.db.WithContext(ctx).First(&drink, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
		}
		return nil, err
	}
	return &drink, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DrinkStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Drink{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Drink, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Drink
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("end_time DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) ListByKeg(ctx context.Context, kegID uuid.UUID, limit int) ([]models.Drink, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Drink
	err := r.db.WithContext(ctx).
		Where("keg_id = ?", kegID).
		Order("end_time DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) PouredVolumeByKeg(ctx context.Context, kegID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Drink{}).
		Where("keg_id = ? AND status = ?", kegID, enums.DrinkStatusValid).
		Select("COALESCE(SUM(volume_ml), 0)").
		Scan(&total).Error
	return total, err
}
