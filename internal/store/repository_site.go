package store

import (
	"context"
	"fmt"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/models"
)

// siteRepository is the relational implementation of [SiteRepository].
type siteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSiteRepository constructs a [SiteRepository] backed by the provided
// database connection and logger.
func NewSiteRepository(db *DB, logger *logger.Logger) SiteRepository {
	logger.Debug().Msg("creating site repository")
	return &siteRepository{
		db:     db,
		logger: logger,
	}
}

// ListSitesForUser returns all sites granted to the user through the
// user_site_access join table, ordered by site id.
func (r *siteRepository) ListSitesForUser(ctx context.Context, userID int64) ([]models.Site, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSitesForUserQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*siteRepository.ListSitesForUser").Msg("error: building sites query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var sites []models.Site
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		result := make([]models.Site, 0, 8)
		for rows.Next() {
			var s models.Site
			if scanErr := rows.Scan(&s.SiteID, &s.Name, &s.BucketName, &s.Location, &s.TotalPower); scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			result = append(result, s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		sites = result
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*siteRepository.ListSitesForUser").Int64("user_id", userID).Msg("error: executing sites query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return sites, nil
}

// emptySiteRepository serves backends without relational site metadata
// (the time-series backend). It always returns an empty list.
type emptySiteRepository struct{}

func (emptySiteRepository) ListSitesForUser(context.Context, int64) ([]models.Site, error) {
	return []models.Site{}, nil
}
