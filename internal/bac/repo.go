package bac

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
)

// Repository manages the append-only BAC estimate log.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rec *models.BAC) error
	// LatestByUser returns the most recent estimate, or nil when the user has
	// no history yet.
	LatestByUser(ctx context.Context, userID uuid.UUID) (*models.BAC, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.BAC, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a BAC repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rec *models.BAC) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.BAC, error) {
	var rec models.BAC
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rec_time DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.BAC, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []models.BAC
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rec_time DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
