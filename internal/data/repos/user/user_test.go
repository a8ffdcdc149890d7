package user

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/contactbook-backend/internal/data/repos/repoerr"
	"github.com/yungbote/contactbook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/contactbook-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	backends := map[string]func(t *testing.T) UserRepo{
		"gorm": func(t *testing.T) UserRepo {
			return NewGormUserRepo(testutil.SQLite(t), testutil.Logger(t))
		},
		"mongo": func(t *testing.T) UserRepo {
			return NewMongoUserRepo(testutil.Mongo(t), testutil.Logger(t))
		},
	}
	for name, open := range backends {
		open := open
		t.Run(name, func(t *testing.T) {
			repo := open(t)
			ctx := context.Background()

			created, err := repo.Create(ctx, &types.User{
				Name:     "A",
				Email:    "userrepo@example.com",
				Password: "pw",
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if !types.IsValidID(created.ID) {
				t.Fatalf("Create: bad id %q", created.ID)
			}

			gotByID, err := repo.GetByID(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if gotByID.Email != created.Email || gotByID.Password != "pw" {
				t.Fatalf("GetByID: unexpected result: %+v", gotByID)
			}

			gotByEmail, err := repo.GetByEmail(ctx, created.Email)
			if err != nil {
				t.Fatalf("GetByEmail: %v", err)
			}
			if gotByEmail.ID != created.ID {
				t.Fatalf("GetByEmail: unexpected result: %+v", gotByEmail)
			}

			exists, err := repo.EmailExists(ctx, created.Email)
			if err != nil {
				t.Fatalf("EmailExists: %v", err)
			}
			if !exists {
				t.Fatalf("EmailExists: expected true")
			}

			exists, err = repo.EmailExists(ctx, "does-not-exist@example.com")
			if err != nil {
				t.Fatalf("EmailExists (missing): %v", err)
			}
			if exists {
				t.Fatalf("EmailExists (missing): expected false")
			}

			_, err = repo.Create(ctx, &types.User{Name: "B", Email: created.Email, Password: "pw"})
			if !errors.Is(err, repoerr.ErrDuplicate) {
				t.Fatalf("Create duplicate: expected ErrDuplicate, got %v", err)
			}

			if _, err := repo.GetByID(ctx, types.NewID()); !errors.Is(err, repoerr.ErrNotFound) {
				t.Fatalf("GetByID missing: expected ErrNotFound, got %v", err)
			}
		})
	}
}
