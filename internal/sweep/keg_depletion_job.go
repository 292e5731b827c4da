package sweep

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

// KegDepletionJobParams configure the keg depletion sweep.
type KegDepletionJobParams struct {
	Logger  *logger.Logger
	Kegs    onlineKegReader
	Volumes pouredVolumeReader
	Status  kegStatusSetter
}

type onlineKegReader interface {
	ListByStatus(ctx context.Context, status enums.KegStatus) ([]models.Keg, error)
}

type pouredVolumeReader interface {
	PouredVolumeByKeg(ctx context.Context, kegID uuid.UUID) (int64, error)
}

type kegStatusSetter interface {
	SetStatus(ctx context.Context, id uuid.UUID, status enums.KegStatus) (*models.Keg, error)
}

// NewKegDepletionJob builds the job that takes kegs offline once their poured
// volume reaches the full volume.
func NewKegDepletionJob(params KegDepletionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Kegs == nil {
		return nil, fmt.Errorf("keg reader required")
	}
	if params.Volumes == nil {
		return nil, fmt.Errorf("poured volume reader required")
	}
	if params.Status == nil {
		return nil, fmt.Errorf("keg status setter required")
	}
	return &kegDepletionJob{
		logg:    params.Logger,
		kegs:    params.Kegs,
		volumes: params.Volumes,
		status:  params.Status,
	}, nil
}

type kegDepletionJob struct {
	logg    *logger.Logger
	kegs    onlineKegReader
	volumes pouredVolumeReader
	status  kegStatusSetter
}

func (j *kegDepletionJob) Name() string { return "keg-depletion" }

func (j *kegDepletionJob) Run(ctx context.Context) error {
	online, err := j.kegs.ListByStatus(ctx, enums.KegStatusOnline)
	if err != nil {
		return fmt.Errorf("list online kegs: %w", err)
	}

	var errs []error
	var depleted int
	for i := range online {
		keg := online[i]
		if keg.FullVolumeML <= 0 {
			continue
		}
		poured, err := j.volumes.PouredVolumeByKeg(ctx, keg.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("poured volume for keg %s: %w", keg.ID, err))
			continue
		}
		if poured < keg.FullVolumeML {
			continue
		}
		if _, err := j.status.SetStatus(ctx, keg.ID, enums.KegStatusOffline); err != nil {
			errs = append(errs, fmt.Errorf("take keg %s offline: %w", keg.ID, err))
			continue
		}
		depleted++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"kegs_checked":  len(online),
		"kegs_depleted": depleted,
	})
	j.logg.Info(logCtx, "keg depletion sweep complete")
	return multierr.Combine(errs...)
}
