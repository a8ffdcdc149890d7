package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/contactbook-backend/internal/data/repos/repoerr"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type gormUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo", "backend", "gorm")
	return &gormUserRepo{db: db, log: repoLog}
}

func (ur *gormUserRepo) Create(ctx context.Context, u *types.User) (*types.User, error) {
	if u == nil {
		return nil, fmt.Errorf("nil user")
	}
	if u.ID == "" {
		u.ID = types.NewID()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if err := ur.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, repoerr.ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (ur *gormUserRepo) GetByID(ctx context.Context, id string) (*types.User, error) {
	return ur.take(ctx, "id = ?", id)
}

func (ur *gormUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return ur.take(ctx, "email = ?", email)
}

func (ur *gormUserRepo) take(ctx context.Context, cond string, arg any) (*types.User, error) {
	var u types.User
	err := ur.db.WithContext(ctx).Where(cond, arg).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repoerr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *gormUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := ur.db.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
