package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
	"github.com/MKhiriev/go-webapp-plugins/internal/validators"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

type userService struct {
	transactor store.Transactor
	validator  validators.Validator
	logger     *logger.Logger
}

func NewUserService(transactor store.Transactor, logger *logger.Logger) UserService {
	return &userService{
		transactor: transactor,
		validator:  validators.NewUserValidator(),
		logger:     logger,
	}
}

// CreateUser validates and stores a new account. A taken username surfaces
// as store.ErrUsernameAlreadyExists.
func (s *userService) CreateUser(ctx context.Context, user models.NewUser) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var created models.User
	err := s.transactor.WithConnection(ctx, func(ctx context.Context, repos *store.Repositories) error {
		var err error
		created, err = repos.Users.CreateUser(ctx, user.Username, user.Person)
		return err
	})
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// ListUsers returns one page of users and the total count.
func (s *userService) ListUsers(ctx context.Context, page models.Page) (models.PageResult[models.User], error) {
	var result models.PageResult[models.User]
	err := s.transactor.WithConnection(ctx, func(ctx context.Context, repos *store.Repositories) error {
		var err error
		result, err = repos.Users.ListUsers(ctx, page)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListUsers").Msg("error listing users")
		return models.PageResult[models.User]{}, err
	}

	return result, nil
}
