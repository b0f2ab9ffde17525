package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atpsolar/credential-service/internal/config"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/mock"
	"github.com/atpsolar/credential-service/internal/store"
	"github.com/atpsolar/credential-service/internal/utils"
	"github.com/atpsolar/credential-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)

	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "atpsolar-credential-service",
		TokenDuration: time.Hour,
	}

	return NewAuthService(repo, cfg, logger.Nop()), repo
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			// the repository must receive a bcrypt digest, never the plaintext
			require.NotEqual(t, "super-secret", user.PasswordHash)
			require.NoError(t, utils.VerifyPassword(user.PasswordHash, "super-secret"))
			require.Equal(t, models.DefaultRole, user.Role)

			user.UserID = 1
			user.CreatedAt = time.Now()
			return user, nil
		})

	created, err := svc.RegisterUser(ctx, "john@solar.example", "super-secret", "0123", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "john@solar.example", created.Email)
}

func TestAuthService_RegisterUser_KeepsExplicitRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			require.Equal(t, "admin", user.Role)
			return user, nil
		})

	_, err := svc.RegisterUser(ctx, "boss@solar.example", "pw", "", "admin")
	require.NoError(t, err)
}

func TestAuthService_RegisterUser_EmptyFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "", "pw", "", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(ctx, "a@solar.example", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.RegisterUser(ctx, "dup@solar.example", "pw", "", "")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := utils.HashPassword("super-secret")
	require.NoError(t, err)

	stored := models.User{
		UserID:       7,
		Email:        "anna@solar.example",
		PasswordHash: hash,
		Role:         "admin",
	}
	repo.EXPECT().FindUserByEmail(ctx, "anna@solar.example").Return(stored, nil)

	user, err := svc.Login(ctx, "anna@solar.example", "super-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "admin", user.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	repo.EXPECT().FindUserByEmail(ctx, "anna@solar.example").
		Return(models.User{UserID: 7, Email: "anna@solar.example", PasswordHash: hash}, nil)

	_, err = svc.Login(ctx, "anna@solar.example", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.False(t, errors.Is(err, store.ErrNoUserWasFound),
		"a wrong password must stay distinguishable from an unknown email")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "ghost@solar.example").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, "ghost@solar.example", "whatever")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
	assert.False(t, errors.Is(err, ErrWrongPassword))
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42, Email: "anna@solar.example"})
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	parsed, err := svc.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	foreign, err := utils.GenerateJWTToken("atpsolar-credential-service", 42, time.Hour, "some-other-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, foreign.String())
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
