package binge

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kegworks/taproom-backend/pkg/db/models"
)

// Repository manages binge session rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, b *models.Binge) error
	// LatestByUserForUpdate locks and returns the user's most recent binge,
	// or nil when the user has none.
	LatestByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Binge, error)
	Save(ctx context.Context, b *models.Binge) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Binge, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a binge repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, b *models.Binge) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) LatestByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Binge, error) {
	var b models.Binge
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("end_time DESC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Save(ctx context.Context, b *models.Binge) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Binge, error) {
	if limit <= 0 {
		limit = 50
	}
	var binges []models.Binge
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("end_time DESC").
		Limit(limit).
		Find(&binges).Error
	return binges, err
}
