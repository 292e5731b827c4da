package kegs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Service owns keg administration. Pour accounting reads kegs but never
// changes them; status flips happen here.
type Service interface {
	Create(ctx context.Context, input CreateKegInput) (*models.Keg, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Keg, error)
	List(ctx context.Context) ([]models.Keg, error)
	// SetStatus moves a keg between online, offline, and coming-soon. Going
	// online stamps the start date; going offline stamps the end date.
	SetStatus(ctx context.Context, id uuid.UUID, status enums.KegStatus) (*models.Keg, error)
}

// CreateKegInput carries the fields a newly tapped keg needs. A zero
// FullVolumeML falls back to a standard half-barrel.
type CreateKegInput struct {
	BeerName      string
	Description   string
	ABV           float64
	FullVolumeML  int64
	OrigCost      decimal.Decimal
	CaloriesPerOz float64
}

type service struct {
	repo Repository
}

// NewService wires a keg service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("keg repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateKegInput) (*models.Keg, error) {
	name := strings.TrimSpace(input.BeerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "beer name is required")
	}
	if input.ABV < 0 || input.ABV > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "abv must be between 0 and 100")
	}
	if input.FullVolumeML < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full volume must not be negative")
	}
	if input.OrigCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}

	fullVolume := input.FullVolumeML
	if fullVolume == 0 {
		fullVolume = models.DefaultKegVolumeML
	}

	keg := &models.Keg{
		BeerName:      name,
		Description:   strings.TrimSpace(input.Description),
		ABV:           input.ABV,
		FullVolumeML:  fullVolume,
		Status:        enums.KegStatusComingSoon,
		OrigCost:      input.OrigCost,
		CaloriesPerOz: input.CaloriesPerOz,
	}
	if err := s.repo.Create(ctx, keg); err != nil {
		return nil, err
	}
	return keg, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Keg, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "keg id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Keg, error) {
	return s.repo.List(ctx)
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.KegStatus) (*models.Keg, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "keg id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid keg status %q", status))
	}

	keg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if keg.Status == status {
		return keg, nil
	}

	now := time.Now().UTC()
	switch status {
	case enums.KegStatusOnline:
		if keg.StartDate == nil {
			keg.StartDate = &now
		}
	case enums.KegStatusOffline:
		keg.EndDate = &now
	}
	keg.Status = status

	if err := s.repo.Save(ctx, keg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "updating keg status")
	}
	return keg, nil
}
