package service

import (
	"context"
	"fmt"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/store"
	"github.com/atpsolar/credential-service/models"
)

// userService implements UserService on top of a UserRepository.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns every stored user record.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		log.Err(err).Str("func", "*userService.ListUsers").Msg("user listing failed")
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// DeleteUser removes the user record for the given email.
//
// Returns ErrInvalidDataProvided for an empty email, or a wrapped storage
// error (store.ErrNoUserWasFound when the email is absent).
func (u *userService) DeleteUser(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("empty email provided for deletion")
		return ErrInvalidDataProvided
	}

	if err := u.userRepository.DeleteUserByEmail(ctx, email); err != nil {
		log.Err(err).Str("email", email).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
