package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
)

func newContactFixture(t *testing.T) (ContactService, *fakeContactRepo, *recordingPublisher) {
	t.Helper()
	log := testLogger(t)
	repo := newFakeContactRepo()
	pub := &recordingPublisher{}
	svc := NewContactService(log, repo, NewContactNotifier(log, pub, nil), 0)
	return svc, repo, pub
}

func jane() types.ContactInput {
	return types.ContactInput{Name: "Jane", Address: "1 Main St", Email: "jane@x.com", Phone: "555-1111"}
}

func requireAPIError(t *testing.T, err error, status int, code, msg string) {
	t.Helper()
	require.Error(t, err)
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "expected *apierr.Error, got %T", err)
	assert.Equal(t, status, ae.Status)
	assert.Equal(t, code, ae.Code)
	if msg != "" {
		assert.Equal(t, msg, ae.Error())
	}
}

func TestContactCreateSetsOwnerFromCaller(t *testing.T) {
	svc, _, pub := newContactFixture(t)
	ctx := context.Background()
	u1 := types.NewID()

	c, err := svc.Create(ctx, u1, jane())
	require.NoError(t, err)
	assert.True(t, types.IsValidID(c.ID))
	assert.Equal(t, u1, c.PostedBy)
	assert.Equal(t, "Jane", c.Name)
	assert.Equal(t, []string{types.EventContactCreated}, pub.kinds())
}

func TestContactCreateValidation(t *testing.T) {
	svc, repo, _ := newContactFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   types.ContactInput
		msg  string
	}{
		{"missing name", types.ContactInput{Address: "a", Email: "a@b.co", Phone: "1"}, `"name" is required`},
		{"bad email", types.ContactInput{Name: "n", Address: "a", Email: "nope", Phone: "1"}, `"email" must be a valid email`},
		{"missing phone", types.ContactInput{Name: "n", Address: "a", Email: "a@b.co"}, `"phone" is required`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, types.NewID(), tc.in)
			requireAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation, tc.msg)
		})
	}
	assert.Zero(t, repo.calls, "validation failures must not reach the store")
}

func TestContactListPaging(t *testing.T) {
	svc, _, _ := newContactFixture(t)
	ctx := context.Background()
	owner := types.NewID()
	var ids []string
	for i := 0; i < 7; i++ {
		c, err := svc.Create(ctx, owner, jane())
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	_, err := svc.Create(ctx, types.NewID(), jane())
	require.NoError(t, err)

	page, err := svc.List(ctx, owner, ListParams{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Limit)
	require.Len(t, page.MyContacts, 2)
	assert.Equal(t, ids[5], page.MyContacts[0].ID)
	assert.Equal(t, ids[6], page.MyContacts[1].ID)

	def, err := svc.List(ctx, owner, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, def.Page)
	assert.Equal(t, DefaultPageLimit, def.Limit)
	assert.Equal(t, types.SortAsc, def.Order)
	assert.Len(t, def.MyContacts, 5)

	desc, err := svc.List(ctx, owner, ListParams{Page: 1, Limit: 3, Order: types.SortDesc})
	require.NoError(t, err)
	require.Len(t, desc.MyContacts, 3)
	assert.Equal(t, ids[6], desc.MyContacts[0].ID)

	empty, err := svc.List(ctx, owner, ListParams{Page: 9, Limit: 5})
	require.NoError(t, err)
	assert.NotNil(t, empty.MyContacts)
	assert.Empty(t, empty.MyContacts)

	_, err = svc.List(ctx, owner, ListParams{Order: "sideways"})
	requireAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidParameter, "")
}

func TestContactListHugeLimitPastEndIsEmpty(t *testing.T) {
	svc, repo, _ := newContactFixture(t)
	ctx := context.Background()
	owner := types.NewID()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, owner, jane())
		require.NoError(t, err)
	}

	huge := math.MaxInt/2 + 1
	first, err := svc.List(ctx, owner, ListParams{Page: 1, Limit: huge})
	require.NoError(t, err)
	assert.Len(t, first.MyContacts, 3)

	before := repo.calls
	past, err := svc.List(ctx, owner, ListParams{Page: 3, Limit: huge})
	require.NoError(t, err)
	assert.Equal(t, 3, past.Page)
	assert.Equal(t, huge, past.Limit)
	assert.NotNil(t, past.MyContacts)
	assert.Empty(t, past.MyContacts, "an offset past math.MaxInt must not wrap to the first page")
	assert.Equal(t, before, repo.calls)

	// (page-1)*limit == MaxInt-1 still fits, so the store is asked and finds nothing.
	edge, err := svc.List(ctx, owner, ListParams{Page: 2, Limit: math.MaxInt - 1})
	require.NoError(t, err)
	assert.Empty(t, edge.MyContacts)
}

func TestContactUpdate(t *testing.T) {
	svc, repo, pub := newContactFixture(t)
	ctx := context.Background()
	u1, u2 := types.NewID(), types.NewID()
	c, err := svc.Create(ctx, u1, jane())
	require.NoError(t, err)

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, u1, "", types.ContactPatch{})
		requireAPIError(t, err, http.StatusBadRequest, apierr.CodeMissingID, "no id specified.")
	})

	t.Run("invalid id issues no store call", func(t *testing.T) {
		before := repo.calls
		_, err := svc.Update(ctx, u1, "not-an-id", types.ContactPatch{})
		requireAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidID, "please enter a valid id")
		assert.Equal(t, before, repo.calls)
	})

	t.Run("not found before ownership", func(t *testing.T) {
		_, err := svc.Update(ctx, u2, types.NewID(), types.ContactPatch{})
		requireAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound, "no contact found")
	})

	t.Run("forbidden leaves record unchanged", func(t *testing.T) {
		name := "Mallory"
		_, err := svc.Update(ctx, u2, c.ID, types.ContactPatch{Name: &name})
		requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeForbidden, "you can't edit other people contacts!")
		got, err := svc.FindByID(ctx, u1, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("invalid patch field", func(t *testing.T) {
		bad := "not-an-email"
		_, err := svc.Update(ctx, u1, c.ID, types.ContactPatch{Email: &bad})
		requireAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation, `"email" must be a valid email`)
	})

	t.Run("applies given fields only", func(t *testing.T) {
		phone := "555-2222"
		got, err := svc.Update(ctx, u1, c.ID, types.ContactPatch{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, u1, got.PostedBy)
		assert.Equal(t, "555-2222", got.Phone)
		assert.Equal(t, "Jane", got.Name)
	})

	t.Run("empty patch returns record", func(t *testing.T) {
		got, err := svc.Update(ctx, u1, c.ID, types.ContactPatch{})
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
	})

	assert.Equal(t, []string{types.EventContactCreated, types.EventContactUpdated}, pub.kinds())
}

func TestContactDeleteScenario(t *testing.T) {
	svc, _, pub := newContactFixture(t)
	ctx := context.Background()
	u1, u2 := types.NewID(), types.NewID()

	first, err := svc.Create(ctx, u1, jane())
	require.NoError(t, err)
	second, err := svc.Create(ctx, u1, jane())
	require.NoError(t, err)
	third, err := svc.Create(ctx, u1, jane())
	require.NoError(t, err)

	_, err = svc.Delete(ctx, u2, first.ID)
	requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeForbidden, "you can't delete other people contacts!")

	res, err := svc.Delete(ctx, u1, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, res.ID)
	require.Len(t, res.MyContacts, 2)
	assert.Equal(t, third.ID, res.MyContacts[0].ID, "remaining list is most recent first")
	assert.Equal(t, second.ID, res.MyContacts[1].ID)

	_, err = svc.FindByID(ctx, u1, first.ID)
	requireAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound, "")

	_, err = svc.Delete(ctx, u1, first.ID)
	requireAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound, "")

	assert.Contains(t, pub.kinds(), types.EventContactDeleted)
}

func TestContactFinders(t *testing.T) {
	svc, repo, _ := newContactFixture(t)
	ctx := context.Background()
	u1, u2 := types.NewID(), types.NewID()
	c, err := svc.Create(ctx, u1, jane())
	require.NoError(t, err)

	got, err := svc.FindByID(ctx, u2, c.ID)
	require.NoError(t, err, "reads by key are not owner scoped")
	assert.Equal(t, c.ID, got.ID)

	before := repo.calls
	_, err = svc.FindByID(ctx, u1, "")
	requireAPIError(t, err, http.StatusBadRequest, apierr.CodeMissingID, "no id specified.")
	_, err = svc.FindByID(ctx, u1, "zzz")
	requireAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidID, "please enter a valid id")
	assert.Equal(t, before, repo.calls, "bad ids must not reach the store")

	byEmail, err := svc.FindByEmail(ctx, u2, "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byEmail.ID)

	_, err = svc.FindByEmail(ctx, u1, "")
	requireAPIError(t, err, http.StatusBadRequest, apierr.CodeMissingParameter, "no email specified.")
	_, err = svc.FindByEmail(ctx, u1, "jane-at-x")
	requireAPIError(t, err, http.StatusBadRequest, apierr.CodeInvalidParameter, "please enter a valid email")
	_, err = svc.FindByEmail(ctx, u1, "ghost@x.com")
	requireAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound, "no contact found")
}

func TestContactStoreFailureIsStoreError(t *testing.T) {
	svc, repo, _ := newContactFixture(t)
	repo.failAll = errors.New("connection refused")

	_, err := svc.Create(context.Background(), types.NewID(), jane())
	requireAPIError(t, err, http.StatusInternalServerError, apierr.CodeStore, "")
	assert.ErrorIs(t, err, repo.failAll)

	_, err = svc.List(context.Background(), types.NewID(), ListParams{})
	requireAPIError(t, err, http.StatusInternalServerError, apierr.CodeStore, "")
}

func TestContactRequiresCaller(t *testing.T) {
	svc, _, _ := newContactFixture(t)
	_, err := svc.Create(context.Background(), "", jane())
	requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeUnauthorized, "")
}
