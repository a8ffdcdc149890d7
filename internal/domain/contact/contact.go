package contact

import (
	"time"

	"github.com/yungbote/contactbook-backend/internal/domain/user"
)

// Contact is one address-book entry. PostedBy is fixed at creation.
type Contact struct {
	ID        string    `gorm:"type:char(24);primaryKey;column:id" json:"_id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Address   string    `gorm:"not null;column:address" json:"address"`
	Email     string    `gorm:"not null;index;column:email" json:"email"`
	Phone     string    `gorm:"not null;column:phone" json:"phone"`
	PostedBy  string    `gorm:"type:char(24);not null;index;column:posted_by" json:"postedBy"`
	CreatedAt time.Time `gorm:"not null;index;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`
}

func (Contact) TableName() string { return "contacts" }

// ContactInput is the create payload. Owner is never read from it.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"required,min=1,max=32"`
}

// ContactPatch holds the mutable attributes of a contact. A nil field is left
// untouched. Identifier and owner are not representable here.
type ContactPatch struct {
	Name    *string `json:"name,omitempty" validate:"omitnil,min=1,max=100"`
	Address *string `json:"address,omitempty" validate:"omitnil,min=1,max=255"`
	Email   *string `json:"email,omitempty" validate:"omitnil,email,max=254"`
	Phone   *string `json:"phone,omitempty" validate:"omitnil,min=1,max=32"`
}

func (p ContactPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Email == nil && p.Phone == nil
}

// Fields returns the patch as column/field name -> value, keyed by the
// given naming function so both bson and sql stores can reuse it.
func (p ContactPatch) Fields(name func(field string) string) map[string]any {
	out := make(map[string]any, 4)
	if p.Name != nil {
		out[name("name")] = *p.Name
	}
	if p.Address != nil {
		out[name("address")] = *p.Address
	}
	if p.Email != nil {
		out[name("email")] = *p.Email
	}
	if p.Phone != nil {
		out[name("phone")] = *p.Phone
	}
	return out
}

// Apply copies the set fields onto c.
func (p ContactPatch) Apply(c *Contact) {
	if c == nil {
		return
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
}

// PopulatedContact is a contact with its owner reference resolved.
// The outer PostedBy shadows Contact.PostedBy when encoded.
type PopulatedContact struct {
	Contact
	PostedBy *user.PublicUser `json:"postedBy"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

type ContactPage struct {
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Order      SortOrder           `json:"order"`
	MyContacts []*PopulatedContact `json:"myContacts"`
}

// DeleteResult is the removed contact followed by what the caller still owns.
type DeleteResult struct {
	Contact
	MyContacts []*PopulatedContact `json:"myContacts"`
}

const (
	EventContactCreated = "contact.created"
	EventContactUpdated = "contact.updated"
	EventContactDeleted = "contact.deleted"
)

// ContactEvent is published after a successful mutation.
type ContactEvent struct {
	Type      string    `json:"type"`
	ContactID string    `json:"contactId"`
	OwnerID   string    `json:"ownerId"`
	At        time.Time `json:"at"`
}
