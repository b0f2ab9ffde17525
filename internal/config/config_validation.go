// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ATPsolar

package config

import "time"

// Fallback values applied by applyDefaults when no source provides them.
const (
	defaultHTTPAddress    = "localhost:8080"
	defaultBackend        = BackendPostgres
	defaultQueryTimeout   = 5 * time.Second
	defaultRetryAttempts  = 3
	defaultTokenDuration  = time.Hour
	defaultTokenIssuer    = "atpsolar-credential-service"
	defaultRequestTimeout = 30 * time.Second
	defaultLoginWindow    = 30 * 24 * time.Hour
	defaultListWindow     = 365 * 24 * time.Hour
)

// applyDefaults fills zero-valued fields of the merged configuration with
// sensible fallbacks so that a minimal deployment only has to provide store
// credentials and the token signing key.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaultBackend
	}
	if cfg.Storage.QueryTimeout == 0 {
		cfg.Storage.QueryTimeout = defaultQueryTimeout
	}
	if cfg.Storage.RetryAttempts < 1 {
		cfg.Storage.RetryAttempts = defaultRetryAttempts
	}
	if cfg.Storage.Influx.LoginWindow == 0 {
		cfg.Storage.Influx.LoginWindow = defaultLoginWindow
	}
	if cfg.Storage.Influx.ListWindow == 0 {
		cfg.Storage.Influx.ListWindow = defaultListWindow
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Storage.Backend {
	case BackendPostgres, BackendSQLite:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendInflux:
		influx := cfg.Storage.Influx
		if influx.URL == "" || influx.Org == "" || influx.Token == "" || influx.Bucket == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrUnknownStorageBackend
	}

	return nil
}
