package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/models"
)

// userRepository is the relational implementation of [UserRepository].
// The same code path serves Postgres and SQLite; the embedded [*DB] carries
// the dialect-specific placeholder format and error classifier.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT returns all columns via a RETURNING clause, so the caller
// receives the canonical database representation of the newly created
// account. Email uniqueness is enforced by the database constraint.
//
// Error handling:
//   - unique-constraint violation → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped in [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, query, args...)
		return row.Scan(&created.UserID, &created.Email, &created.PasswordHash, &created.Phone, &created.Role, &created.CreatedAt)
	})
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn().Str("email", user.Email).Msg("duplicate registration rejected")
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: executing insert")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindUserByEmail retrieves the user record whose email matches exactly.
//
// Error handling:
//   - empty result ([sql.ErrNoRows]) → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped in [ErrExecutingQuery].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByEmailQuery(r.db.builder(), email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, query, args...)
		return row.Scan(&found.UserID, &found.Email, &found.PasswordHash, &found.Phone, &found.Role, &found.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: executing select")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// ListUsers returns every stored user record ordered by creation time.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var users []models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		result := make([]models.User, 0, 16)
		for rows.Next() {
			var u models.User
			if scanErr := rows.Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt); scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			result = append(result, u)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		users = result
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: executing list query")
		if errors.Is(err, ErrScanningRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

// DeleteUserByEmail removes the user record for the given email.
// Deleting an absent email is reported as [ErrNoUserWasFound] so that the
// handler can answer 404 instead of claiming success.
func (r *userRepository) DeleteUserByEmail(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder(), email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUserByEmail").Msg("error: building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNoUserWasFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoUserWasFound) {
			return ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.DeleteUserByEmail").Msg("error: executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
