package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/api/responses"
	"github.com/kegworks/taproom-backend/api/validators"
	"github.com/kegworks/taproom-backend/internal/bac"
	"github.com/kegworks/taproom-backend/internal/binge"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/users"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

type userCreateRequest struct {
	Username string  `json:"username" validate:"required,min=1"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Gender   string  `json:"gender" validate:"required,oneof=male female"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Admin    bool    `json:"admin"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Gender   string    `json:"gender"`
	WeightKg float64   `json:"weight_kg"`
	Admin    bool      `json:"admin"`
}

type sessionResponse struct {
	ID           uuid.UUID `json:"id"`
	StartDrinkID uuid.UUID `json:"start_drink_id"`
	EndDrinkID   uuid.UUID `json:"end_drink_id"`
	VolumeML     int64     `json:"volume_ml"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Gender:   u.Gender.String(),
		WeightKg: u.WeightKg,
		Admin:    u.Admin,
	}
}

func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// UserCreate registers a drinker account.
func UserCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var req userCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gender, err := enums.ParseGender(req.Gender)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender"))
			return
		}

		user, err := svc.Create(r.Context(), users.CreateUserInput{
			Username: req.Username,
			Email:    req.Email,
			Gender:   gender,
			WeightKg: req.WeightKg,
			Admin:    req.Admin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toUserResponse(user))
	}
}

// UserGet returns one account by id.
func UserGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toUserResponse(user))
	}
}

// UserList lists every account.
func UserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]userResponse, 0, len(list))
		for i := range list {
			out = append(out, toUserResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// UserBAC returns a user's current estimate, decayed to request time.
func UserBAC(svc bac.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bac service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		now := time.Now().UTC()
		value, err := svc.Current(r.Context(), userID, now)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"user_id": userID,
			"bac":     value,
			"as_of":   now,
		})
	}
}

// UserSessions lists a user's drinking sessions, newest first.
func UserSessions(svc binge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		list, err := svc.ListByUser(r.Context(), userID, limitParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]sessionResponse, 0, len(list))
		for _, b := range list {
			out = append(out, sessionResponse{
				ID:           b.ID,
				StartDrinkID: b.StartDrinkID,
				EndDrinkID:   b.EndDrinkID,
				VolumeML:     b.VolumeML,
				StartTime:    b.StartTime,
				EndTime:      b.EndTime,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// UserDrinks lists a user's pours, newest first.
func UserDrinks(repo drinks.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drink repository unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		list, err := repo.ListByUser(r.Context(), userID, limitParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]drinkResponse, 0, len(list))
		for i := range list {
			out = append(out, toDrinkResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
