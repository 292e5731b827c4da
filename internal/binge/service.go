package binge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Service groups drinks into sessions. Two drinks belong to the same session
// when the gap between them stays under the configured threshold.
type Service interface {
	// Assign attaches the drink to the user's latest binge or opens a new one,
	// inside tx. The latest binge row is locked for the transaction.
	Assign(ctx context.Context, tx *gorm.DB, drink *models.Drink) (*models.Binge, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Binge, error)
}

type service struct {
	repo Repository
	gap  time.Duration
}

// NewService wires a binge service with the session gap threshold.
func NewService(repo Repository, gap time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("binge repository required")
	}
	if gap <= 0 {
		return nil, fmt.Errorf("session gap must be positive, got %s", gap)
	}
	return &service{repo: repo, gap: gap}, nil
}

func (s *service) Assign(ctx context.Context, tx *gorm.DB, drink *models.Drink) (*models.Binge, error) {
	if drink == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink is required")
	}

	repo := s.repo.WithTx(tx)

	latest, err := repo.LatestByUserForUpdate(ctx, drink.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading latest binge")
	}

	if latest != nil {
		if drink.EndTime.Before(latest.EndTime) {
			return nil, pkgerrors.New(pkgerrors.CodeOutOfOrder, "drink predates the latest session").
				WithDetails(map[string]any{
					"drink_id":    drink.ID,
					"drink_time":  drink.EndTime,
					"latest_time": latest.EndTime,
				})
		}
		if drink.EndTime.Sub(latest.EndTime) < s.gap {
			latest.EndDrinkID = drink.ID
			latest.EndTime = drink.EndTime
			latest.VolumeML += drink.VolumeML
			if err := repo.Save(ctx, latest); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "extending binge")
			}
			return latest, nil
		}
	}

	b := &models.Binge{
		UserID:       drink.UserID,
		StartDrinkID: drink.ID,
		EndDrinkID:   drink.ID,
		VolumeML:     drink.VolumeML,
		StartTime:    drink.EndTime,
		EndTime:      drink.EndTime,
	}
	if err := repo.Create(ctx, b); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "opening binge")
	}
	return b, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Binge, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
