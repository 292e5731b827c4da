package policy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Service evaluates pricing policies and owns the admin-managed records.
type Service interface {
	Cost(policy *models.Policy, volumeML int64) (decimal.Decimal, error)
	Create(ctx context.Context, input CreatePolicyInput) (*models.Policy, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	List(ctx context.Context) ([]models.Policy, error)
}

// CreatePolicyInput captures the immutable data a policy requires.
type CreatePolicyInput struct {
	Type         enums.PolicyType
	UnitCost     decimal.Decimal
	UnitVolumeML int64
	Description  string
}

type service struct {
	repo Repository
}

// NewService wires a policy service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("policy repository required")
	}
	return &service{repo: repo}, nil
}

// Cost prices a volume under the policy. Free policies always cost zero.
// Fixed-cost policies charge unitcost per unitvolume, pro-rated. A zero unit
// volume is a misconfigured policy, not a division crash.
func (s *service) Cost(policy *models.Policy, volumeML int64) (decimal.Decimal, error) {
	if policy == nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "policy is required")
	}
	if volumeML < 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "volume must not be negative")
	}

	switch policy.Type {
	case enums.PolicyTypeFree:
		return decimal.Zero, nil
	case enums.PolicyTypeFixedCost:
		if policy.UnitVolumeML == 0 {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeConfiguration, "fixed-cost policy has zero unit volume").
				WithDetails(map[string]any{"policy_id": policy.ID})
		}
		// multiply before dividing so exact multiples price exactly
		return policy.UnitCost.
			Mul(decimal.NewFromInt(volumeML)).
			Div(decimal.NewFromInt(policy.UnitVolumeML)), nil
	default:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("unknown policy type %q", policy.Type))
	}
}

func (s *service) Create(ctx context.Context, input CreatePolicyInput) (*models.Policy, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid policy type %q", input.Type))
	}
	if input.Type == enums.PolicyTypeFixedCost {
		if input.UnitVolumeML <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fixed-cost policy requires positive unit volume")
		}
		if input.UnitCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must not be negative")
		}
	}

	policy := &models.Policy{
		Type:         input.Type,
		UnitCost:     input.UnitCost,
		UnitVolumeML: input.UnitVolumeML,
		Description:  input.Description,
	}
	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "policy id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Policy, error) {
	return s.repo.List(ctx)
}
