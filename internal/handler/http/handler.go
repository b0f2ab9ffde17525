package http

import (
	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/service"
)

type Handler struct {
	services *service.Services

	version string
	logger  *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		version:  cfg.Version,
		logger:   logger,
	}
}
