package grants

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Service owns grant administration. Charging happens in the Allocator, not
// here.
type Service interface {
	Create(ctx context.Context, input CreateGrantInput) (*models.Grant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Grant, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Grant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateGrantInput captures the data a new authorization requires. Threshold
// fields are validated against the expiration kind.
type CreateGrantInput struct {
	UserID      uuid.UUID
	PolicyID    uuid.UUID
	Expiration  enums.GrantExpiration
	ExpVolumeML int64
	ExpTime     *time.Time
	ExpDrinks   int64
}

type service struct {
	repo Repository
}

// NewService wires a grant admin service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("grant repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateGrantInput) (*models.Grant, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.PolicyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "policy id is required")
	}
	if !input.Expiration.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid expiration kind %q", input.Expiration))
	}

	switch input.Expiration {
	case enums.GrantExpirationVolume:
		if input.ExpVolumeML <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "volume-kind grant requires positive volume threshold")
		}
	case enums.GrantExpirationTime:
		if input.ExpTime == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "time-kind grant requires an expiry timestamp")
		}
	case enums.GrantExpirationDrinks:
		if input.ExpDrinks <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "drinks-kind grant requires positive drink threshold")
		}
	}

	grant := &models.Grant{
		UserID:      input.UserID,
		PolicyID:    input.PolicyID,
		Expiration:  input.Expiration,
		Status:      enums.GrantStatusActive,
		ExpVolumeML: input.ExpVolumeML,
		ExpTime:     input.ExpTime,
		ExpDrinks:   input.ExpDrinks,
	}
	if err := s.repo.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Grant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grant id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Grant, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "grant id is required")
	}
	return s.repo.SoftDelete(ctx, id)
}
