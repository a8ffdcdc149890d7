package contact

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

type gormContactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo", "backend", "gorm")
	return &gormContactRepo{db: db, log: repoLog}
}

func (r *gormContactRepo) Create(ctx context.Context, c *types.Contact) (*types.Contact, error) {
	if c == nil {
		return nil, fmt.Errorf("nil contact")
	}
	if c.ID == "" {
		c.ID = types.NewID()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *gormContactRepo) GetByID(ctx context.Context, id string) (*types.Contact, error) {
	var c types.Contact
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repoerr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormContactRepo) GetByEmail(ctx context.Context, email string) (*types.Contact, error) {
	var c types.Contact
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC, id ASC").
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repoerr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormContactRepo) ListByOwner(ctx context.Context, ownerID string, q ListQuery) ([]*types.PopulatedContact, error) {
	dir := "ASC"
	if q.Order == types.SortDesc {
		dir = "DESC"
	}
	query := r.db.WithContext(ctx).
		Where("posted_by = ?", ownerID).
		Order(fmt.Sprintf("created_at %s, id %s", dir, dir))
	if q.Skip > 0 {
		query = query.Offset(q.Skip)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	var rows []*types.Contact
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.populate(ctx, rows)
}

// populate resolves PostedBy through the users table without its password column.
func (r *gormContactRepo) populate(ctx context.Context, rows []*types.Contact) ([]*types.PopulatedContact, error) {
	out := make([]*types.PopulatedContact, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	seen := make(map[string]struct{}, len(rows))
	ownerIDs := make([]string, 0, 1)
	for _, c := range rows {
		if _, ok := seen[c.PostedBy]; ok {
			continue
		}
		seen[c.PostedBy] = struct{}{}
		ownerIDs = append(ownerIDs, c.PostedBy)
	}
	var owners []*types.PublicUser
	if err := r.db.WithContext(ctx).
		Select("id", "name", "email", "created_at", "updated_at").
		Where("id IN ?", ownerIDs).
		Find(&owners).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*types.PublicUser, len(owners))
	for _, u := range owners {
		byID[u.ID] = u
	}
	for _, c := range rows {
		out = append(out, &types.PopulatedContact{Contact: *c, PostedBy: byID[c.PostedBy]})
	}
	return out, nil
}

func (r *gormContactRepo) Update(ctx context.Context, id string, patch types.ContactPatch) (*types.Contact, error) {
	fields := patch.Fields(func(f string) string { return f })
	fields["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&types.Contact{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *gormContactRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repoerr.ErrNotFound
	}
	return nil
}
