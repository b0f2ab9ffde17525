package service

import (
	"context"

	"github.com/atpsolar/credential-service/models"
)

// AuthService covers account creation, credential verification and the JWT
// token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, email, password, phone, role string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService covers the administration operations over stored user records.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, email string) error
}

// SiteService resolves which monitoring sites an authenticated user may see.
type SiteService interface {
	ListSitesForUser(ctx context.Context, userID int64) ([]models.Site, error)
}
