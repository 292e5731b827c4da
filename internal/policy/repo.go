package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Repository manages persistence for pricing policies.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, policy *models.Policy) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	List(ctx context.Context) ([]models.Policy, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a policy repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, policy *models.Policy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var policy models.Policy
	if err := r.db.WithContext(ctx).First(&policy, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "policy not found")
		}
		return nil, err
	}
	return &policy, nil
}

func (r *repository) List(ctx context.Context) ([]models.Policy, error) {
	var policies []models.Policy
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}
