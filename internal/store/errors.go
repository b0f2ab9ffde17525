package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the store.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup or delete expected to match
	// a user record produces an empty result.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrDeleteFailed is returned when the store rejects a delete operation
	// (a non-success response from the external store).
	ErrDeleteFailed = errors.New("user record delete failed")
)

// Low-level store operation errors. These are returned (or wrapped) by
// repository methods when a store-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read query against the
	// store fails.
	ErrExecutingQuery = errors.New("error executing store query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrWritingRecord is returned when a write to the store completes with a
	// non-success response (e.g. a rejected line-protocol write).
	ErrWritingRecord = errors.New("failed to write user record")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan user rows")
)
