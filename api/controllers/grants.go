package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/api/responses"
	"github.com/kegworks/taproom-backend/api/validators"
	"github.com/kegworks/taproom-backend/internal/grants"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

type grantCreateRequest struct {
	UserID      string     `json:"user_id" validate:"required,uuid"`
	PolicyID    string     `json:"policy_id" validate:"required,uuid"`
	Expiration  string     `json:"expiration" validate:"required"`
	ExpVolumeML int64      `json:"exp_volume_ml" validate:"min=0"`
	ExpTime     *time.Time `json:"exp_time,omitempty"`
	ExpDrinks   int64      `json:"exp_drinks" validate:"min=0"`
}

type grantResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	PolicyID      uuid.UUID  `json:"policy_id"`
	Expiration    string     `json:"expiration"`
	Status        string     `json:"status"`
	ExpVolumeML   int64      `json:"exp_volume_ml,omitempty"`
	ExpTime       *time.Time `json:"exp_time,omitempty"`
	ExpDrinks     int64      `json:"exp_drinks,omitempty"`
	TotalVolumeML int64      `json:"total_volume_ml"`
	TotalDrinks   int64      `json:"total_drinks"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toGrantResponse(g *models.Grant) grantResponse {
	return grantResponse{
		ID:            g.ID,
		UserID:        g.UserID,
		PolicyID:      g.PolicyID,
		Expiration:    g.Expiration.String(),
		Status:        g.Status.String(),
		ExpVolumeML:   g.ExpVolumeML,
		ExpTime:       g.ExpTime,
		ExpDrinks:     g.ExpDrinks,
		TotalVolumeML: g.TotalVolumeML,
		TotalDrinks:   g.TotalDrinks,
		CreatedAt:     g.CreatedAt,
	}
}

// GrantCreate issues a new pour authorization.
func GrantCreate(svc grants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grant service unavailable"))
			return
		}

		var req grantCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}
		policyID, err := uuid.Parse(req.PolicyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid policy id"))
			return
		}
		expiration, err := enums.ParseGrantExpiration(req.Expiration)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expiration kind"))
			return
		}

		grant, err := svc.Create(r.Context(), grants.CreateGrantInput{
			UserID:      userID,
			PolicyID:    policyID,
			Expiration:  expiration,
			ExpVolumeML: req.ExpVolumeML,
			ExpTime:     req.ExpTime,
			ExpDrinks:   req.ExpDrinks,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toGrantResponse(grant))
	}
}

// GrantGet returns one grant by id.
func GrantGet(svc grants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grant service unavailable"))
			return
		}

		grantID, err := uuid.Parse(chi.URLParam(r, "grantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grant id"))
			return
		}

		grant, err := svc.Get(r.Context(), grantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toGrantResponse(grant))
	}
}

// GrantDelete soft-deletes a grant so it can no longer be charged.
func GrantDelete(svc grants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grant service unavailable"))
			return
		}

		grantID, err := uuid.Parse(chi.URLParam(r, "grantID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grant id"))
			return
		}

		if err := svc.Delete(r.Context(), grantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// UserGrants lists a user's live grants.
func UserGrants(svc grants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grant service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		list, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]grantResponse, 0, len(list))
		for i := range list {
			out = append(out, toGrantResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
