package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid store settings for the
	// selected backend (for example, empty DSN or missing Influx token).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrUnknownStorageBackend indicates that STORAGE_BACKEND names a
	// backend this build does not support.
	ErrUnknownStorageBackend = errors.New("unknown storage backend")
)
