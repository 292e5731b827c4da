package pour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/internal/bac"
	"github.com/kegworks/taproom-backend/internal/binge"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/grants"
	"github.com/kegworks/taproom-backend/internal/kegs"
	"github.com/kegworks/taproom-backend/internal/policy"
	"github.com/kegworks/taproom-backend/internal/users"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/locks"
	"github.com/kegworks/taproom-backend/pkg/logger"
	"github.com/kegworks/taproom-backend/pkg/metrics"
	"github.com/kegworks/taproom-backend/pkg/units"
)

// Metric outcome labels.
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Input describes one finished pour as reported by a tap controller. When
// VolumeML is zero the volume is derived from meter ticks.
type Input struct {
	UserID    uuid.UUID
	KegID     uuid.UUID
	Ticks     int64
	VolumeML  int64
	StartTime time.Time
	EndTime   time.Time
}

// Result is everything one processed pour produced.
type Result struct {
	Drink       *models.Drink
	Charges     []models.GrantCharge
	ShortfallML int64
	BAC         *models.BAC
	Binge       *models.Binge
	// Cost is informational: the sum of each charge priced under its grant's
	// policy. Shortfall volume carries no policy and costs nothing.
	Cost decimal.Decimal
}

// Deps carries everything the processor needs. All fields are required
// except Metrics and Logger, which degrade to no-ops.
type Deps struct {
	DB       txRunner
	Locker   locks.Locker
	Users    users.Repository
	Kegs     kegs.Repository
	Drinks   drinks.Repository
	Grants   grants.Repository
	Policies policy.Repository

	Allocator *grants.Allocator
	BAC       bac.Service
	Binges    binge.Service
	Pricing   policy.Service

	Metrics *metrics.PourMetrics
	Logger  *logger.Logger

	TicksPerLiter int64
	LockWait      time.Duration
	StoreTimeout  time.Duration
}

// Processor runs the full accounting pipeline for one pour: drink row,
// grant charges, BAC update, and session assignment, atomically per user.
type Processor struct {
	deps Deps
}

// NewProcessor validates deps and builds a processor.
func NewProcessor(deps Deps) (*Processor, error) {
	switch {
	case deps.DB == nil:
		return nil, fmt.Errorf("db is required")
	case deps.Locker == nil:
		return nil, fmt.Errorf("locker is required")
	case deps.Users == nil, deps.Kegs == nil, deps.Drinks == nil,
		deps.Grants == nil, deps.Policies == nil:
		return nil, fmt.Errorf("all repositories are required")
	case deps.Allocator == nil, deps.BAC == nil, deps.Binges == nil, deps.Pricing == nil:
		return nil, fmt.Errorf("all services are required")
	}
	if deps.TicksPerLiter <= 0 {
		deps.TicksPerLiter = units.DefaultTicksPerLiter
	}
	if deps.LockWait <= 0 {
		deps.LockWait = 10 * time.Second
	}
	if deps.StoreTimeout <= 0 {
		deps.StoreTimeout = 15 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = logger.New(logger.Options{Level: zerolog.Disabled})
	}
	return &Processor{deps: deps}, nil
}

// Process records one pour. The caller's pour serializes with any other
// in-flight pour by the same user: a keyed lock is taken first, and grant
// and session rows stay locked for the single enclosing transaction. Either
// every side effect of the pour commits or none do.
func (p *Processor) Process(ctx context.Context, input Input) (*Result, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.KegID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "keg id is required")
	}
	if input.Ticks < 0 || input.VolumeML < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticks and volume must not be negative")
	}

	endTime := input.EndTime
	if endTime.IsZero() {
		endTime = time.Now().UTC()
	}
	startTime := input.StartTime
	if startTime.IsZero() || startTime.After(endTime) {
		startTime = endTime
	}

	volume := input.VolumeML
	if volume == 0 && input.Ticks > 0 {
		volume = units.VolumeFromTicks(input.Ticks, p.deps.TicksPerLiter)
	}

	ctx = p.deps.Logger.WithUserID(ctx, input.UserID.String())
	ctx = p.deps.Logger.WithKegID(ctx, input.KegID.String())

	lockCtx, cancel := context.WithTimeout(ctx, p.deps.LockWait)
	defer cancel()
	release, err := p.deps.Locker.Acquire(lockCtx, "pour:user:"+input.UserID.String())
	if err != nil {
		p.deps.Metrics.IncProcessed(outcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "user is being poured for elsewhere")
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			p.deps.Logger.Warn(ctx, "releasing pour lock: "+err.Error())
		}
	}()

	// The whole transaction runs under one deadline so a stalled store fails
	// the pour instead of pinning the user lock.
	txCtx, cancelTx := context.WithTimeout(ctx, p.deps.StoreTimeout)
	defer cancelTx()

	result := &Result{Cost: decimal.Zero}
	err = p.deps.DB.WithTx(txCtx, func(tx *gorm.DB) error {
		user, err := p.deps.Users.WithTx(tx).FindByID(txCtx, input.UserID)
		if err != nil {
			return err
		}
		keg, err := p.deps.Kegs.WithTx(tx).FindByID(txCtx, input.KegID)
		if err != nil {
			return err
		}
		if keg.Status != enums.KegStatusOnline {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("keg is %s, not online", keg.Status))
		}

		drink := &models.Drink{
			Ticks:     input.Ticks,
			VolumeML:  volume,
			StartTime: startTime,
			EndTime:   endTime,
			UserID:    user.ID,
			KegID:     keg.ID,
			Status:    enums.DrinkStatusValid,
		}
		if err := p.deps.Drinks.WithTx(tx).Create(txCtx, drink); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "recording drink")
		}
		result.Drink = drink

		alloc, err := p.deps.Allocator.Allocate(txCtx, tx, drink)
		if err != nil {
			return err
		}
		result.Charges = alloc.Charges
		result.ShortfallML = alloc.ShortfallML

		cost, err := p.priceCharges(txCtx, tx, alloc.Charges)
		if err != nil {
			return err
		}
		result.Cost = cost

		rec, err := p.deps.BAC.ProcessDrink(txCtx, tx, user, keg, drink)
		if err != nil {
			return err
		}
		result.BAC = rec

		b, err := p.deps.Binges.Assign(txCtx, tx, drink)
		if err != nil {
			return err
		}
		result.Binge = b
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = pkgerrors.Wrap(pkgerrors.CodePersistence, err, "pour storage timed out")
		}
		if pkgerrors.IsCode(err, pkgerrors.CodeInsufficient) || pkgerrors.IsCode(err, pkgerrors.CodeOutOfOrder) {
			p.deps.Metrics.IncProcessed(outcomeRejected)
		} else {
			p.deps.Metrics.IncProcessed(outcomeError)
		}
		p.deps.Logger.Error(ctx, "pour failed", err)
		return nil, err
	}

	p.deps.Metrics.IncProcessed(outcomeOK)
	p.deps.Metrics.ObserveVolume(result.Drink.VolumeML)
	if result.ShortfallML > 0 {
		p.deps.Metrics.AddShortfall(result.ShortfallML)
	}

	ctx = p.deps.Logger.WithDrinkID(ctx, result.Drink.ID.String())
	p.deps.Logger.Info(ctx, fmt.Sprintf("pour recorded: %dmL, %d charge(s), %dmL shortfall",
		result.Drink.VolumeML, len(result.Charges), result.ShortfallML))
	return result, nil
}

// priceCharges sums each grant-backed charge under its grant's policy.
// Policies repeat across charges often enough to warrant the tiny cache.
func (p *Processor) priceCharges(ctx context.Context, tx *gorm.DB, charges []models.GrantCharge) (decimal.Decimal, error) {
	grantsRepo := p.deps.Grants.WithTx(tx)
	policiesRepo := p.deps.Policies.WithTx(tx)

	total := decimal.Zero
	cache := make(map[uuid.UUID]*models.Policy)

	for _, charge := range charges {
		if charge.GrantID == nil {
			continue
		}
		grant, err := grantsRepo.FindByID(ctx, *charge.GrantID)
		if err != nil {
			return decimal.Zero, err
		}
		pol, ok := cache[grant.PolicyID]
		if !ok {
			pol, err = policiesRepo.FindByID(ctx, grant.PolicyID)
			if err != nil {
				return decimal.Zero, err
			}
			cache[grant.PolicyID] = pol
		}
		cost, err := p.deps.Pricing.Cost(pol, charge.VolumeML)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(cost)
	}
	return total, nil
}

// Void flips a drink to invalid. Charges, BAC records, and session rows are
// history and stay as written; voiding only excludes the drink from keg
// depletion and future reporting.
func (p *Processor) Void(ctx context.Context, drinkID uuid.UUID) (*models.Drink, error) {
	if drinkID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink id is required")
	}

	drink, err := p.deps.Drinks.FindByID(ctx, drinkID)
	if err != nil {
		return nil, err
	}
	if drink.Status == enums.DrinkStatusInvalid {
		return drink, nil
	}

	if err := p.deps.Drinks.UpdateStatus(ctx, drinkID, enums.DrinkStatusInvalid); err != nil {
		return nil, err
	}
	drink.Status = enums.DrinkStatusInvalid

	ctx = p.deps.Logger.WithDrinkID(ctx, drinkID.String())
	p.deps.Logger.Info(ctx, "drink voided")
	return drink, nil
}
