package store

import (
	"context"

	"github.com/atpsolar/credential-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the persistence contract for user records.
//
// Every backend enforces the uniqueness invariant: at most one active user
// record per email. Implementations return the sentinel errors declared in
// errors.go so that callers can match with [errors.Is].
type UserRepository interface {
	// CreateUser persists a new user record and returns it with
	// server-assigned fields (UserID, CreatedAt) populated.
	// Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the user record for the given email.
	// Returns ErrNoUserWasFound when no record exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// ListUsers returns all stored user records.
	ListUsers(ctx context.Context) ([]models.User, error)

	// DeleteUserByEmail removes the user record for the given email.
	// Returns ErrNoUserWasFound when no record exists.
	DeleteUserByEmail(ctx context.Context, email string) error
}

// SiteRepository is the persistence contract for solar site metadata.
type SiteRepository interface {
	// ListSitesForUser returns all sites the given user can access through
	// the user_site_access join.
	ListSitesForUser(ctx context.Context, userID int64) ([]models.Site, error)
}
