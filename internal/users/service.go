package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kegworks/taproom-backend/pkg/db"
	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
)

// Service owns drinker account administration.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// CreateUserInput carries the fields a new account needs. Weight and gender
// feed the BAC estimator, so both are required.
type CreateUserInput struct {
	Username string
	Email    string
	Gender   enums.Gender
	WeightKg float64
	Admin    bool
}

type service struct {
	repo Repository
}

// NewService wires a user service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if !input.Gender.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid gender %q", input.Gender))
	}
	if input.WeightKg <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight must be positive")
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(input.Email),
		Gender:   input.Gender,
		WeightKg: input.WeightKg,
		Admin:    input.Admin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("username %q already taken", username))
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	return s.repo.FindByUsername(ctx, username)
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}
