package bac

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/units"
)

// Service maintains the per-user BAC estimate log.
type Service interface {
	// ProcessDrink decays the prior estimate to the drink's end time, adds the
	// drink's instantaneous contribution, and appends the new record inside tx.
	ProcessDrink(ctx context.Context, tx *gorm.DB, user *models.User, keg *models.Keg, drink *models.Drink) (*models.BAC, error)
	// Current returns the user's estimate decayed to now, 0 with no history.
	Current(ctx context.Context, userID uuid.UUID, now time.Time) (float64, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.BAC, error)
}

type service struct {
	repo        Repository
	ratePerHour float64
}

// NewService wires a BAC service with the given elimination rate, expressed
// in BAC points per hour.
func NewService(repo Repository, ratePerHour float64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bac repository required")
	}
	if ratePerHour < 0 {
		return nil, fmt.Errorf("elimination rate must not be negative, got %f", ratePerHour)
	}
	return &service{repo: repo, ratePerHour: ratePerHour}, nil
}

func (s *service) ProcessDrink(ctx context.Context, tx *gorm.DB, user *models.User, keg *models.Keg, drink *models.Drink) (*models.BAC, error) {
	if user == nil || keg == nil || drink == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user, keg, and drink are required")
	}

	repo := s.repo.WithTx(tx)

	prior, err := repo.LatestByUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading latest bac")
	}

	value := 0.0
	if prior != nil {
		if drink.EndTime.Before(prior.RecTime) {
			return nil, pkgerrors.New(pkgerrors.CodeOutOfOrder, "drink predates the latest bac record").
				WithDetails(map[string]any{
					"drink_id":    drink.ID,
					"drink_time":  drink.EndTime,
					"latest_time": prior.RecTime,
				})
		}
		value = Decay(prior.Value, drink.EndTime.Sub(prior.RecTime), s.ratePerHour)
	}

	value += Instant(user.Gender, user.WeightKg, keg.ABV, units.ToOunces(drink.VolumeML))
	if value < 0 {
		value = 0
	}

	rec := &models.BAC{
		UserID:  user.ID,
		DrinkID: drink.ID,
		RecTime: drink.EndTime,
		Value:   value,
	}
	if err := repo.Create(ctx, rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "recording bac")
	}
	return rec, nil
}

func (s *service) Current(ctx context.Context, userID uuid.UUID, now time.Time) (float64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	latest, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading latest bac")
	}
	if latest == nil {
		return 0, nil
	}
	return Decay(latest.Value, now.Sub(latest.RecTime), s.ratePerHour), nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.BAC, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
