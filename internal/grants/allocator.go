package grants

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Allocation is the outcome of charging one pour against a user's grants.
// ShortfallML is nonzero only when the grants ran out first; under the
// "record" policy the shortfall also appears as a trailing grantless charge.
type Allocation struct {
	Charges     []models.GrantCharge
	ShortfallML int64
}

// ChargedML sums the authorized (grant-backed) portion of the allocation.
func (a *Allocation) ChargedML() int64 {
	var total int64
	for _, c := range a.Charges {
		if c.GrantID != nil {
			total += c.VolumeML
		}
	}
	return total
}

// Allocator charges pour volume against a user's active grants,
// soonest-expiring first.
type Allocator struct {
	repo      Repository
	shortfall enums.ShortfallPolicy
}

// NewAllocator builds an allocator with the given shortfall policy.
func NewAllocator(repo Repository, shortfall enums.ShortfallPolicy) (*Allocator, error) {
	if repo == nil {
		return nil, fmt.Errorf("grant repository required")
	}
	if !shortfall.IsValid() {
		return nil, fmt.Errorf("invalid shortfall policy %q", shortfall)
	}
	return &Allocator{repo: repo, shortfall: shortfall}, nil
}

// Allocate charges drink.VolumeML against the user's grants inside tx. Grant
// rows are locked for the duration of the transaction, so concurrent pours by
// the same user serialize here even without the coarser per-user lock.
//
// The walk charges min(remaining, available) per grant, updates cumulative
// totals exactly once per charge, and never emits a zero-volume charge. The
// drink itself must already be persisted (charges reference it).
func (a *Allocator) Allocate(ctx context.Context, tx *gorm.DB, drink *models.Drink) (*Allocation, error) {
	if drink == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink is required")
	}
	if drink.VolumeML < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink volume must not be negative")
	}

	repo := a.repo.WithTx(tx)
	now := drink.EndTime

	candidates, err := repo.ListActiveForUpdate(ctx, drink.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading grants")
	}

	usable := make([]*models.Grant, 0, len(candidates))
	for i := range candidates {
		if !IsExpired(&candidates[i], now, 0) {
			usable = append(usable, &candidates[i])
		}
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return ExpiresBefore(usable[i], usable[j], now)
	})

	alloc := &Allocation{}
	remaining := drink.VolumeML

	for _, grant := range usable {
		if remaining == 0 {
			break
		}
		available, unlimited := AvailableVolume(grant, now)
		take := remaining
		if !unlimited && available < take {
			take = available
		}
		if take == 0 {
			continue
		}

		IncVolume(grant, take)
		IncDrinks(grant)
		if err := repo.Save(ctx, grant); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "updating grant totals")
		}

		grantID := grant.ID
		charge := models.GrantCharge{
			GrantID:  &grantID,
			DrinkID:  drink.ID,
			UserID:   drink.UserID,
			VolumeML: take,
		}
		if err := repo.CreateCharge(ctx, &charge); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "recording grant charge")
		}
		alloc.Charges = append(alloc.Charges, charge)
		remaining -= take
	}

	if remaining > 0 {
		alloc.ShortfallML = remaining
		switch a.shortfall {
		case enums.ShortfallPolicyReject:
			return nil, pkgerrors.New(pkgerrors.CodeInsufficient, "pour volume exceeds authorized capacity").
				WithDetails(map[string]any{
					"drink_id":     drink.ID,
					"shortfall_ml": remaining,
				})
		case enums.ShortfallPolicyRecord:
			charge := models.GrantCharge{
				DrinkID:  drink.ID,
				UserID:   drink.UserID,
				VolumeML: remaining,
			}
			if err := repo.CreateCharge(ctx, &charge); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "recording shortfall charge")
			}
			alloc.Charges = append(alloc.Charges, charge)
		}
	}

	return alloc, nil
}
