package service

import (
	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/store"
)

type Services struct {
	AuthService AuthService
	UserService UserService
	SiteService SiteService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService: NewUserService(storages.UserRepository, logger),
		SiteService: NewSiteService(storages.SiteRepository, logger),
	}
}
