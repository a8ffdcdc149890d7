package testutil

import (
	"context"
	"fmt"
	"testing"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       types.NewID(),
		Name:     "User",
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID string, n int) *types.Contact {
	tb.Helper()
	c := &types.Contact{
		ID:       types.NewID(),
		Name:     fmt.Sprintf("Contact %d", n),
		Address:  fmt.Sprintf("%d Main St", n),
		Email:    fmt.Sprintf("contact%d@example.com", n),
		Phone:    fmt.Sprintf("555-%04d", n),
		PostedBy: ownerID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}

// NewContact builds an unsaved contact for repo-level tests.
func NewContact(ownerID string, n int) *types.Contact {
	return &types.Contact{
		Name:     fmt.Sprintf("Contact %d", n),
		Address:  fmt.Sprintf("%d Main St", n),
		Email:    fmt.Sprintf("contact%d@example.com", n),
		Phone:    fmt.Sprintf("555-%04d", n),
		PostedBy: ownerID,
	}
}
