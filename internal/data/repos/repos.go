package repos

import (
	"github.com/yungbote/contactbook-backend/internal/data/repos/contact"
	"github.com/yungbote/contactbook-backend/internal/data/repos/repoerr"
	"github.com/yungbote/contactbook-backend/internal/data/repos/user"
)

type ContactRepo = contact.ContactRepo
type ListQuery = contact.ListQuery

type UserRepo = user.UserRepo

var (
	ErrNotFound  = repoerr.ErrNotFound
	ErrDuplicate = repoerr.ErrDuplicate
)

var (
	NewGormContactRepo  = contact.NewGormContactRepo
	NewMongoContactRepo = contact.NewMongoContactRepo
	NewGormUserRepo     = user.NewGormUserRepo
	NewMongoUserRepo    = user.NewMongoUserRepo
)
