package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/api/responses"
	"github.com/kegworks/taproom-backend/api/validators"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/pour"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

type pourRequest struct {
	UserID    string     `json:"user_id" validate:"required,uuid"`
	KegID     string     `json:"keg_id" validate:"required,uuid"`
	Ticks     int64      `json:"ticks" validate:"min=0"`
	VolumeML  int64      `json:"volume_ml" validate:"min=0"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

type chargeResponse struct {
	ID       uuid.UUID  `json:"id"`
	GrantID  *uuid.UUID `json:"grant_id,omitempty"`
	VolumeML int64      `json:"volume_ml"`
}

type drinkResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	KegID     uuid.UUID `json:"keg_id"`
	Ticks     int64     `json:"ticks"`
	VolumeML  int64     `json:"volume_ml"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type pourResponse struct {
	Drink       drinkResponse    `json:"drink"`
	Charges     []chargeResponse `json:"charges"`
	ShortfallML int64            `json:"shortfall_ml"`
	BAC         float64          `json:"bac"`
	SessionID   uuid.UUID        `json:"session_id"`
	Cost        string           `json:"cost"`
}

func toDrinkResponse(d *models.Drink) drinkResponse {
	return drinkResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		KegID:     d.KegID,
		Ticks:     d.Ticks,
		VolumeML:  d.VolumeML,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Status:    d.Status.String(),
	}
}

// PourCreate records one finished pour reported by a tap controller.
func PourCreate(processor *pour.Processor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if processor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pour processor unavailable"))
			return
		}

		var req pourRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}
		kegID, err := uuid.Parse(req.KegID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid keg id"))
			return
		}

		input := pour.Input{
			UserID:   userID,
			KegID:    kegID,
			Ticks:    req.Ticks,
			VolumeML: req.VolumeML,
		}
		if req.StartTime != nil {
			input.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			input.EndTime = *req.EndTime
		}

		result, err := processor.Process(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := pourResponse{
			Drink:       toDrinkResponse(result.Drink),
			Charges:     make([]chargeResponse, 0, len(result.Charges)),
			ShortfallML: result.ShortfallML,
			BAC:         result.BAC.Value,
			SessionID:   result.Binge.ID,
			Cost:        result.Cost.StringFixed(2),
		}
		for _, c := range result.Charges {
			resp.Charges = append(resp.Charges, chargeResponse{
				ID:       c.ID,
				GrantID:  c.GrantID,
				VolumeML: c.VolumeML,
			})
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// DrinkVoid flips a drink to invalid without compensating its ledger entries.
func DrinkVoid(processor *pour.Processor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if processor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pour processor unavailable"))
			return
		}

		drinkID, err := uuid.Parse(chi.URLParam(r, "drinkID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid drink id"))
			return
		}

		drink, err := processor.Void(r.Context(), drinkID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toDrinkResponse(drink))
	}
}

// DrinkGet returns one drink by id.
func DrinkGet(repo drinks.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drink repository unavailable"))
			return
		}

		drinkID, err := uuid.Parse(chi.URLParam(r, "drinkID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid drink id"))
			return
		}

		drink, err := repo.FindByID(r.Context(), drinkID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toDrinkResponse(drink))
	}
}
