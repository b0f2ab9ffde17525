package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/mock"
	"github.com/atpsolar/credential-service/internal/store"
	"github.com/atpsolar/credential-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.Nop())
	ctx := context.Background()

	stored := []models.User{
		{UserID: 1, Email: "a@solar.example", Role: "user", CreatedAt: time.Now()},
		{UserID: 2, Email: "b@solar.example", Role: "admin", CreatedAt: time.Now()},
	}
	repo.EXPECT().ListUsers(ctx).Return(stored, nil)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, users)
}

func TestUserService_ListUsers_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().ListUsers(ctx).Return(nil, errors.New("connection reset"))

	_, err := svc.ListUsers(ctx)
	assert.Error(t, err)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().DeleteUserByEmail(ctx, "john@solar.example").Return(nil)

	require.NoError(t, svc.DeleteUser(ctx, "john@solar.example"))
}

func TestUserService_DeleteUser_EmptyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.Nop())

	err := svc.DeleteUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().DeleteUserByEmail(ctx, "ghost@solar.example").Return(store.ErrNoUserWasFound)

	err := svc.DeleteUser(ctx, "ghost@solar.example")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestSiteService_ListSitesForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockSiteRepository(ctrl)
	svc := NewSiteService(repo, logger.Nop())
	ctx := context.Background()

	sites := []models.Site{
		{SiteID: 1, Name: "Rooftop North", BucketName: "site-rooftop-north", TotalPower: 12500},
	}
	repo.EXPECT().ListSitesForUser(ctx, int64(7)).Return(sites, nil)

	got, err := svc.ListSitesForUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, sites, got)
}

func TestSiteService_ListSitesForUser_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockSiteRepository(ctrl)
	svc := NewSiteService(repo, logger.Nop())

	_, err := svc.ListSitesForUser(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
