package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kegworks/taproom-backend/api/responses"
	"github.com/kegworks/taproom-backend/api/validators"
	"github.com/kegworks/taproom-backend/internal/policy"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

type policyCreateRequest struct {
	Type         string `json:"type" validate:"required,oneof=free fixed-cost"`
	UnitCost     string `json:"unit_cost,omitempty"`
	UnitVolumeML int64  `json:"unit_volume_ml" validate:"min=0"`
	Description  string `json:"description,omitempty"`
}

type policyResponse struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	UnitCost     string    `json:"unit_cost"`
	UnitVolumeML int64     `json:"unit_volume_ml,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPolicyResponse(p *models.Policy) policyResponse {
	return policyResponse{
		ID:           p.ID,
		Type:         p.Type.String(),
		UnitCost:     p.UnitCost.StringFixed(2),
		UnitVolumeML: p.UnitVolumeML,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
	}
}

// PolicyCreate registers a pricing rule.
func PolicyCreate(svc policy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "policy service unavailable"))
			return
		}

		var req policyCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		policyType, err := enums.ParsePolicyType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid policy type"))
			return
		}

		unitCost := decimal.Zero
		if req.UnitCost != "" {
			unitCost, err = decimal.NewFromString(req.UnitCost)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit cost"))
				return
			}
		}

		created, err := svc.Create(r.Context(), policy.CreatePolicyInput{
			Type:         policyType,
			UnitCost:     unitCost,
			UnitVolumeML: req.UnitVolumeML,
			Description:  req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toPolicyResponse(created))
	}
}

// PolicyGet returns one policy by id.
func PolicyGet(svc policy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "policy service unavailable"))
			return
		}

		policyID, err := uuid.Parse(chi.URLParam(r, "policyID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid policy id"))
			return
		}

		p, err := svc.Get(r.Context(), policyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPolicyResponse(p))
	}
}

// PolicyList lists all pricing rules.
func PolicyList(svc policy.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "policy service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]policyResponse, 0, len(list))
		for i := range list {
			out = append(out, toPolicyResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
