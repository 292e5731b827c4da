package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kegworks/taproom-backend/api/responses"
	"github.com/kegworks/taproom-backend/api/validators"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/kegs"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

type kegCreateRequest struct {
	BeerName      string  `json:"beer_name" validate:"required,min=1"`
	Description   string  `json:"description,omitempty"`
	ABV           float64 `json:"abv" validate:"min=0,max=100"`
	FullVolumeML  int64   `json:"full_volume_ml" validate:"min=0"`
	OrigCost      string  `json:"orig_cost,omitempty"`
	CaloriesPerOz float64 `json:"calories_per_oz" validate:"min=0"`
}

type kegStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline coming-soon"`
}

type kegResponse struct {
	ID            uuid.UUID  `json:"id"`
	BeerName      string     `json:"beer_name"`
	Description   string     `json:"description,omitempty"`
	ABV           float64    `json:"abv"`
	FullVolumeML  int64      `json:"full_volume_ml"`
	RemainingML   *int64     `json:"remaining_ml,omitempty"`
	Status        string     `json:"status"`
	OrigCost      string     `json:"orig_cost"`
	CaloriesPerOz float64    `json:"calories_per_oz"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

func toKegResponse(k *models.Keg) kegResponse {
	return kegResponse{
		ID:            k.ID,
		BeerName:      k.BeerName,
		Description:   k.Description,
		ABV:           k.ABV,
		FullVolumeML:  k.FullVolumeML,
		Status:        k.Status.String(),
		OrigCost:      k.OrigCost.StringFixed(2),
		CaloriesPerOz: k.CaloriesPerOz,
		StartDate:     k.StartDate,
		EndDate:       k.EndDate,
	}
}

// KegCreate taps a new keg in coming-soon state.
func KegCreate(svc kegs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "keg service unavailable"))
			return
		}

		var req kegCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		origCost := decimal.Zero
		if req.OrigCost != "" {
			var err error
			origCost, err = decimal.NewFromString(req.OrigCost)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid keg cost"))
				return
			}
		}

		keg, err := svc.Create(r.Context(), kegs.CreateKegInput{
			BeerName:      req.BeerName,
			Description:   req.Description,
			ABV:           req.ABV,
			FullVolumeML:  req.FullVolumeML,
			OrigCost:      origCost,
			CaloriesPerOz: req.CaloriesPerOz,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toKegResponse(keg))
	}
}

// KegGet returns one keg with its remaining volume.
func KegGet(svc kegs.Service, drinksRepo drinks.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "keg service unavailable"))
			return
		}

		kegID, err := uuid.Parse(chi.URLParam(r, "kegID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid keg id"))
			return
		}

		keg, err := svc.Get(r.Context(), kegID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := toKegResponse(keg)
		if drinksRepo != nil {
			poured, err := drinksRepo.PouredVolumeByKeg(r.Context(), kegID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			remaining := keg.FullVolumeML - poured
			if remaining < 0 {
				remaining = 0
			}
			resp.RemainingML = &remaining
		}
		responses.WriteSuccess(w, resp)
	}
}

// KegList lists all kegs.
func KegList(svc kegs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "keg service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]kegResponse, 0, len(list))
		for i := range list {
			out = append(out, toKegResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// KegSetStatus moves a keg between online, offline, and coming-soon.
func KegSetStatus(svc kegs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "keg service unavailable"))
			return
		}

		kegID, err := uuid.Parse(chi.URLParam(r, "kegID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid keg id"))
			return
		}

		var req kegStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseKegStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid keg status"))
			return
		}

		keg, err := svc.SetStatus(r.Context(), kegID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toKegResponse(keg))
	}
}
