package contact

import (
	"context"

	types "github.com/yungbote/contactbook-backend/internal/domain"
)

// ListQuery pages an owner's contacts. Limit 0 means no limit.
type ListQuery struct {
	Skip  int
	Limit int
	Order types.SortOrder
}

// ContactRepo is implemented by every store backend. Lookups of an absent
// record return repoerr.ErrNotFound.
type ContactRepo interface {
	Create(ctx context.Context, c *types.Contact) (*types.Contact, error)
	GetByID(ctx context.Context, id string) (*types.Contact, error)
	GetByEmail(ctx context.Context, email string) (*types.Contact, error)
	ListByOwner(ctx context.Context, ownerID string, q ListQuery) ([]*types.PopulatedContact, error)
	Update(ctx context.Context, id string, patch types.ContactPatch) (*types.Contact, error)
	Delete(ctx context.Context, id string) error
}
