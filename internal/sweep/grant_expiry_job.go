package sweep

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/kegworks/taproom-backend/internal/grants"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GrantExpiryJobParams configure the grant expiry sweep.
type GrantExpiryJobParams struct {
	Logger       *logger.Logger
	DB           txRunner
	StoreFactory grantStoreFactory
}

type grantSweepStore interface {
	ListLapsed(ctx context.Context, cutoff time.Time) ([]models.Grant, error)
	Save(ctx context.Context, grant *models.Grant) error
}

type grantStoreFactory func(tx *gorm.DB) grantSweepStore

func defaultGrantStore(tx *gorm.DB) grantSweepStore {
	return grants.NewRepository(tx)
}

// NewGrantExpiryJob builds the job that flips lapsed time grants to expired.
// The allocator already treats them as unusable; the flip keeps the ledger in
// line with what actually happened.
func NewGrantExpiryJob(params GrantExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	storeFactory := params.StoreFactory
	if storeFactory == nil {
		storeFactory = defaultGrantStore
	}
	return &grantExpiryJob{
		logg:         params.Logger,
		db:           params.DB,
		storeFactory: storeFactory,
		now:          time.Now,
	}, nil
}

type grantExpiryJob struct {
	logg         *logger.Logger
	db           txRunner
	storeFactory grantStoreFactory
	now          func() time.Time
}

func (j *grantExpiryJob) Name() string { return "grant-expiry" }

func (j *grantExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC()
	var expired int
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		store := j.storeFactory(tx)
		lapsed, err := store.ListLapsed(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("list lapsed grants: %w", err)
		}
		var errs []error
		for i := range lapsed {
			grant := lapsed[i]
			grant.Status = enums.GrantStatusExpired
			if err := store.Save(ctx, &grant); err != nil {
				errs = append(errs, fmt.Errorf("expire grant %s: %w", grant.ID, err))
				continue
			}
			expired++
		}
		return multierr.Combine(errs...)
	})
	if err != nil {
		return fmt.Errorf("grant expiry sweep: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"grants_expired": expired,
	})
	j.logg.Info(logCtx, "grant expiry sweep complete")
	return nil
}
