package grants

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Repository manages persistence for grants and their charge ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, grant *models.Grant) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Grant, error)
	// ListActiveForUpdate fetches a user's active grants with row locks held
	// for the rest of the surrounding transaction.
	ListActiveForUpdate(ctx context.Context, userID uuid.UUID) ([]models.Grant, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Grant, error)
	// ListLapsed fetches active time-expiration grants whose deadline passed
	// before the cutoff.
	ListLapsed(ctx context.Context, cutoff time.Time) ([]models.Grant, error)
	Save(ctx context.Context, grant *models.Grant) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CreateCharge(ctx context.Context, charge *models.GrantCharge) error
	ListChargesByDrink(ctx context.Context, drinkID uuid.UUID) ([]models.GrantCharge, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a grant repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, grant *models.Grant) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Grant, error) {
	var grant models.Grant
	if err := r.db.WithContext(ctx).First(&grant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "grant not found")
		}
		return nil, err
	}
	return &grant, nil
}

func (r *repository) ListActiveForUpdate(ctx context.Context, userID uuid.UUID) ([]models.Grant, error) {
	var grants []models.Grant
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND status = ?", userID, enums.GrantStatusActive).
		Order("created_at ASC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Grant, error) {
	var grants []models.Grant
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, enums.GrantStatusDeleted).
		Order("created_at ASC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *repository) ListLapsed(ctx context.Context, cutoff time.Time) ([]models.Grant, error) {
	var grants []models.Grant
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expiration = ? AND exp_time < ?",
			enums.GrantStatusActive, enums.GrantExpirationTime, cutoff).
		Order("exp_time ASC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *repository) Save(ctx context.Context, grant *models.Grant) error {
	return r.db.WithContext(ctx).Save(grant).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Grant{}).
		Where("id = ?", id).
		Update("status", enums.GrantStatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "grant not found")
	}
	return nil
}

func (r *repository) CreateCharge(ctx context.Context, charge *models.GrantCharge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

func (r *repository) ListChargesByDrink(ctx context.Context, drinkID uuid.UUID) ([]models.GrantCharge, error) {
	var charges []models.GrantCharge
	if err := r.db.WithContext(ctx).
		Where("drink_id = ?", drinkID).
		Order("created_at ASC").
		Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}
