package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/contactbook-backend/internal/data/repos"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeContactRepo struct {
	mu      sync.Mutex
	rows    []*types.Contact
	users   map[string]*types.PublicUser
	calls   int
	failAll error
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{users: map[string]*types.PublicUser{}}
}

func (f *fakeContactRepo) touch() error {
	f.calls++
	return f.failAll
}

func (f *fakeContactRepo) Create(ctx context.Context, c *types.Contact) (*types.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	cp := *c
	cp.ID = types.NewID()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.rows = append(f.rows, &cp)
	out := cp
	return &out, nil
}

func (f *fakeContactRepo) find(pred func(*types.Contact) bool) (*types.Contact, error) {
	for _, c := range f.rows {
		if pred(c) {
			out := *c
			return &out, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (f *fakeContactRepo) GetByID(ctx context.Context, id string) (*types.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	return f.find(func(c *types.Contact) bool { return c.ID == id })
}

func (f *fakeContactRepo) GetByEmail(ctx context.Context, email string) (*types.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	return f.find(func(c *types.Contact) bool { return c.Email == email })
}

func (f *fakeContactRepo) ListByOwner(ctx context.Context, ownerID string, q repos.ListQuery) ([]*types.PopulatedContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	var owned []*types.Contact
	for _, c := range f.rows {
		if c.PostedBy == ownerID {
			owned = append(owned, c)
		}
	}
	if q.Order == types.SortDesc {
		for i, j := 0, len(owned)-1; i < j; i, j = i+1, j-1 {
			owned[i], owned[j] = owned[j], owned[i]
		}
	}
	out := []*types.PopulatedContact{}
	for i, c := range owned {
		if i < q.Skip {
			continue
		}
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		out = append(out, &types.PopulatedContact{Contact: *c, PostedBy: f.users[ownerID]})
	}
	return out, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, id string, patch types.ContactPatch) (*types.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return nil, err
	}
	for _, c := range f.rows {
		if c.ID == id {
			patch.Apply(c)
			c.UpdatedAt = time.Now().UTC()
			out := *c
			return &out, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (f *fakeContactRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.touch(); err != nil {
		return err
	}
	for i, c := range f.rows {
		if c.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repos.ErrNotFound
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*types.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *types.User) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, repos.ErrDuplicate
		}
	}
	cp := *u
	cp.ID = types.NewID()
	f.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, repos.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if errors.Is(err, repos.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []types.ContactEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt types.ContactEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
