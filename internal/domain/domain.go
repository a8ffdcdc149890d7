package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yungbote/contactbook-backend/internal/domain/contact"
	"github.com/yungbote/contactbook-backend/internal/domain/user"
)

type User = user.User
type PublicUser = user.PublicUser
type RegisterInput = user.RegisterInput
type LoginInput = user.LoginInput

type Contact = contact.Contact
type ContactInput = contact.ContactInput
type ContactPatch = contact.ContactPatch
type PopulatedContact = contact.PopulatedContact
type ContactPage = contact.ContactPage
type DeleteResult = contact.DeleteResult
type ContactEvent = contact.ContactEvent
type SortOrder = contact.SortOrder

const (
	SortAsc  = contact.SortAsc
	SortDesc = contact.SortDesc

	EventContactCreated = contact.EventContactCreated
	EventContactUpdated = contact.EventContactUpdated
	EventContactDeleted = contact.EventContactDeleted
)

// NewID returns a fresh store identifier (24 hex chars, ObjectId layout).
// Every backend uses this syntax so ids stay portable between stores.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether s has the store identifier syntax.
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}
