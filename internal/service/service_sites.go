package service

import (
	"context"
	"fmt"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/store"
	"github.com/atpsolar/credential-service/models"
)

// siteService implements SiteService on top of a SiteRepository.
type siteService struct {
	siteRepository store.SiteRepository
	logger         *logger.Logger
}

// NewSiteService constructs a SiteService wired to the given SiteRepository.
func NewSiteService(siteRepository store.SiteRepository, logger *logger.Logger) SiteService {
	return &siteService{
		siteRepository: siteRepository,
		logger:         logger,
	}
}

// ListSitesForUser returns the monitoring sites the user has been granted
// access to.
func (s *siteService) ListSitesForUser(ctx context.Context, userID int64) ([]models.Site, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		log.Error().Int64("user_id", userID).Msg("invalid user id for site listing")
		return nil, ErrInvalidDataProvided
	}

	sites, err := s.siteRepository.ListSitesForUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("site listing failed")
		return nil, fmt.Errorf("site listing failed: %w", err)
	}

	return sites, nil
}
