package kegs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Repository manages keg rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, keg *models.Keg) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Keg, error)
	List(ctx context.Context) ([]models.Keg, error)
	ListByStatus(ctx context.Context, status enums.KegStatus) ([]models.Keg, error)
	Save(ctx context.Context, keg *models.Keg) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a keg repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, keg *models.Keg) error {
	return r.db.WithContext(ctx).Create(keg).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Keg, error) {
	var keg models.Keg
	if err := r.db.WithContext(ctx).First(&keg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "keg not found")
		}
		return nil, err
	}
	return &keg, nil
}

func (r *repository) List(ctx context.Context) ([]models.Keg, error) {
	var out []models.Keg
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) ListByStatus(ctx context.Context, status enums.KegStatus) ([]models.Keg, error) {
	var out []models.Keg
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) Save(ctx context.Context, keg *models.Keg) error {
	return r.db.WithContext(ctx).Save(keg).Error
}
