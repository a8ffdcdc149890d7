package user

import (
	"context"

	types "github.com/yungbote/contactbook-backend/internal/domain"
)

// UserRepo stores the identities contacts point at. Create returns
// repoerr.ErrDuplicate when the email is taken.
type UserRepo interface {
	Create(ctx context.Context, u *types.User) (*types.User, error)
	GetByID(ctx context.Context, id string) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
