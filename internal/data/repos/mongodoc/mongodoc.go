// Package mongodoc maps domain records to their BSON layout. Ids are stored as
// native ObjectIDs and exposed to the rest of the app as hex strings.
package mongodoc

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	types "github.com/yungbote/contactbook-backend/internal/domain"
)

type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Address   string             `bson:"address"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	PostedBy  primitive.ObjectID `bson:"postedBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// PopulatedContact is the shape produced by the owner $lookup stage.
type PopulatedContact struct {
	Contact `bson:",inline"`
	Owner   *User `bson:"owner,omitempty"`
}

func FromContact(c *types.Contact) (*Contact, error) {
	id, err := objectIDOrNew(c.ID)
	if err != nil {
		return nil, fmt.Errorf("contact id: %w", err)
	}
	owner, err := primitive.ObjectIDFromHex(c.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("contact owner: %w", err)
	}
	return &Contact{
		ID:        id,
		Name:      c.Name,
		Address:   c.Address,
		Email:     c.Email,
		Phone:     c.Phone,
		PostedBy:  owner,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (d *Contact) ToDomain() *types.Contact {
	return &types.Contact{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Address:   d.Address,
		Email:     d.Email,
		Phone:     d.Phone,
		PostedBy:  d.PostedBy.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d *PopulatedContact) ToDomain() *types.PopulatedContact {
	out := &types.PopulatedContact{Contact: *d.Contact.ToDomain()}
	if d.Owner != nil {
		out.PostedBy = d.Owner.ToDomain().Public()
	}
	return out
}

func FromUser(u *types.User) (*User, error) {
	id, err := objectIDOrNew(u.ID)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}
	return &User{
		ID:        id,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func (d *User) ToDomain() *types.User {
	return &types.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func objectIDOrNew(hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NewObjectID(), nil
	}
	return primitive.ObjectIDFromHex(hex)
}
