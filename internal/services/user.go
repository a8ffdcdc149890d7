package services

import (
	"context"
	"errors"

	"github.com/yungbote/contactbook-backend/internal/data/repos"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.PublicUser, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.PublicUser, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == "" {
		us.log.Warn("Request data not set in context")
		return nil, apierr.Unauthorized(msgNoCaller)
	}
	u, err := us.userRepo.GetByID(ctx, rd.UserID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, apierr.Unauthorized("user no longer exists")
	}
	if err != nil {
		us.log.Error("load user failed", "user_id", rd.UserID, "error", err)
		return nil, apierr.Store("find user", err)
	}
	return u.Public(), nil
}
