package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/yungbote/contactbook-backend/internal/data/repos"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

const DefaultPageLimit = 5

const (
	msgNoID            = "no id specified."
	msgBadID           = "please enter a valid id"
	msgNoEmail         = "no email specified."
	msgBadEmail        = "please enter a valid email"
	msgNoContact       = "no contact found"
	msgEditForbidden   = "you can't edit other people contacts!"
	msgDeleteForbidden = "you can't delete other people contacts!"
	msgBadOrder        = "order must be one of asc, desc"
	msgNoCaller        = "missing or invalid token"
)

// ListParams is the raw paging request. Zero or negative values select the
// defaults; an empty Order means ascending (insertion) order.
type ListParams struct {
	Page  int
	Limit int
	Order types.SortOrder
}

type ContactService interface {
	Create(ctx context.Context, callerID string, in types.ContactInput) (*types.Contact, error)
	List(ctx context.Context, callerID string, params ListParams) (*types.ContactPage, error)
	Update(ctx context.Context, callerID, id string, patch types.ContactPatch) (*types.Contact, error)
	Delete(ctx context.Context, callerID, id string) (*types.DeleteResult, error)
	FindByID(ctx context.Context, callerID, id string) (*types.Contact, error)
	FindByEmail(ctx context.Context, callerID, email string) (*types.Contact, error)
}

type contactService struct {
	log          *logger.Logger
	contactRepo  repos.ContactRepo
	notifier     ContactNotifier
	defaultLimit int
}

func NewContactService(log *logger.Logger, contactRepo repos.ContactRepo, notifier ContactNotifier, defaultLimit int) ContactService {
	serviceLog := log.With("service", "ContactService")
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if notifier == nil {
		notifier = NewContactNotifier(log, nil, nil)
	}
	return &contactService{
		log:          serviceLog,
		contactRepo:  contactRepo,
		notifier:     notifier,
		defaultLimit: defaultLimit,
	}
}

func (cs *contactService) Create(ctx context.Context, callerID string, in types.ContactInput) (*types.Contact, error) {
	if callerID == "" {
		return nil, apierr.Unauthorized(msgNoCaller)
	}
	if err := validatePayload(in); err != nil {
		return nil, err
	}
	created, err := cs.contactRepo.Create(ctx, &types.Contact{
		Name:     in.Name,
		Address:  in.Address,
		Email:    in.Email,
		Phone:    in.Phone,
		PostedBy: callerID,
	})
	if err != nil {
		cs.log.Error("create contact failed", "caller_id", callerID, "error", err)
		return nil, apierr.Store("create contact", err)
	}
	cs.notifier.ContactCreated(ctx, created)
	return created, nil
}

func (cs *contactService) List(ctx context.Context, callerID string, params ListParams) (*types.ContactPage, error) {
	if callerID == "" {
		return nil, apierr.Unauthorized(msgNoCaller)
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = cs.defaultLimit
	}
	order := params.Order
	if order == "" {
		order = types.SortAsc
	}
	if !order.Valid() {
		return nil, apierr.InvalidParameter(msgBadOrder)
	}

	// A page past what an int offset can address cannot hold any contacts.
	if page-1 > math.MaxInt/limit {
		return &types.ContactPage{Page: page, Limit: limit, Order: order, MyContacts: []*types.PopulatedContact{}}, nil
	}
	list, err := cs.contactRepo.ListByOwner(ctx, callerID, repos.ListQuery{
		Skip:  (page - 1) * limit,
		Limit: limit,
		Order: order,
	})
	if err != nil {
		cs.log.Error("list contacts failed", "caller_id", callerID, "error", err)
		return nil, apierr.Store("list contacts", err)
	}
	if list == nil {
		list = []*types.PopulatedContact{}
	}
	return &types.ContactPage{Page: page, Limit: limit, Order: order, MyContacts: list}, nil
}

func (cs *contactService) Update(ctx context.Context, callerID, id string, patch types.ContactPatch) (*types.Contact, error) {
	existing, err := cs.loadOwned(ctx, callerID, id, msgEditForbidden)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(patch); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return existing, nil
	}
	updated, err := cs.contactRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, cs.translate("update contact", id, err)
	}
	cs.notifier.ContactUpdated(ctx, updated)
	return updated, nil
}

func (cs *contactService) Delete(ctx context.Context, callerID, id string) (*types.DeleteResult, error) {
	existing, err := cs.loadOwned(ctx, callerID, id, msgDeleteForbidden)
	if err != nil {
		return nil, err
	}
	if err := cs.contactRepo.Delete(ctx, id); err != nil {
		return nil, cs.translate("delete contact", id, err)
	}
	cs.notifier.ContactDeleted(ctx, existing)

	remaining, err := cs.contactRepo.ListByOwner(ctx, callerID, repos.ListQuery{Order: types.SortDesc})
	if err != nil {
		cs.log.Error("list remaining contacts failed", "caller_id", callerID, "error", err)
		return nil, apierr.Store("list contacts", err)
	}
	if remaining == nil {
		remaining = []*types.PopulatedContact{}
	}
	return &types.DeleteResult{Contact: *existing, MyContacts: remaining}, nil
}

// FindByID is not owner-scoped: any authenticated caller may read any contact.
func (cs *contactService) FindByID(ctx context.Context, callerID, id string) (*types.Contact, error) {
	if callerID == "" {
		return nil, apierr.Unauthorized(msgNoCaller)
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := cs.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, cs.translate("find contact", id, err)
	}
	return c, nil
}

// FindByEmail is not owner-scoped and returns the oldest match.
func (cs *contactService) FindByEmail(ctx context.Context, callerID, email string) (*types.Contact, error) {
	if callerID == "" {
		return nil, apierr.Unauthorized(msgNoCaller)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apierr.MissingParameter(msgNoEmail)
	}
	if err := payloadValidator().Var(email, "email"); err != nil {
		return nil, apierr.InvalidParameter(msgBadEmail)
	}
	c, err := cs.contactRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, cs.translate("find contact by email", "", err)
	}
	return c, nil
}

// loadOwned runs the id, existence and ownership checks shared by the
// mutating operations, in that order.
func (cs *contactService) loadOwned(ctx context.Context, callerID, id, forbidden string) (*types.Contact, error) {
	if callerID == "" {
		return nil, apierr.Unauthorized(msgNoCaller)
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	existing, err := cs.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, cs.translate("find contact", id, err)
	}
	if existing.PostedBy != callerID {
		cs.log.Warn("contact ownership mismatch", "contact_id", id, "caller_id", callerID, "owner_id", existing.PostedBy)
		return nil, apierr.Forbidden(forbidden)
	}
	return existing, nil
}

func (cs *contactService) translate(op, id string, err error) error {
	if errors.Is(err, repos.ErrNotFound) {
		return apierr.NotFound(msgNoContact)
	}
	cs.log.Error(op+" failed", "contact_id", id, "error", err)
	return apierr.Store(op, err)
}

func checkID(id string) error {
	if id == "" {
		return apierr.MissingID(msgNoID)
	}
	if !types.IsValidID(id) {
		return apierr.InvalidID(msgBadID)
	}
	return nil
}
