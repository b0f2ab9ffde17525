package store

import (
	"context"
	"fmt"

	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
)

// Storages bundles every repository the service layer depends on, together
// with the lifecycle of the underlying store connection.
type Storages struct {
	UserRepository UserRepository
	SiteRepository SiteRepository

	db *DB
}

// NewStorages constructs the repositories for the backend selected in cfg.
//
// Relational backends are connected, pinged, and migrated before any
// repository is handed out. The time-series backend needs no migration; its
// bucket is provisioned by the InfluxDB deployment.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating storages...")

	switch cfg.Backend {
	case config.BackendPostgres, config.BackendSQLite:
		var db *DB
		var err error
		if cfg.Backend == config.BackendPostgres {
			db, err = NewConnectPostgres(ctx, cfg, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg, log)
		}
		if err != nil {
			return nil, err
		}

		if err := db.Migrate(); err != nil {
			return nil, err
		}

		return &Storages{
			UserRepository: NewUserRepository(db, log),
			SiteRepository: NewSiteRepository(db, log),
			db:             db,
		}, nil

	case config.BackendInflux:
		return &Storages{
			UserRepository: NewInfluxUserRepository(cfg, log),
			SiteRepository: emptySiteRepository{},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageBackend, cfg.Backend)
	}
}

// Close releases the underlying store connection, if any.
func (s *Storages) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
