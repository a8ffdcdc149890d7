package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	dbpkg "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/data/repos/mongodoc"
	"github.com/yungbote/contactbook-backend/internal/data/repos/repoerr"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type mongoUserRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewMongoUserRepo(db *mongo.Database, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo", "backend", "mongo")
	return &mongoUserRepo{coll: db.Collection(dbpkg.UsersCollection), log: repoLog}
}

func (ur *mongoUserRepo) Create(ctx context.Context, u *types.User) (*types.User, error) {
	if u == nil {
		return nil, fmt.Errorf("nil user")
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	doc, err := mongodoc.FromUser(u)
	if err != nil {
		return nil, err
	}
	if _, err := ur.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repoerr.ErrDuplicate
		}
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (ur *mongoUserRepo) GetByID(ctx context.Context, id string) (*types.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repoerr.ErrNotFound
	}
	return ur.findOne(ctx, bson.M{"_id": oid})
}

func (ur *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return ur.findOne(ctx, bson.M{"email": email})
}

func (ur *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*types.User, error) {
	var doc mongodoc.User
	if err := ur.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repoerr.ErrNotFound
		}
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (ur *mongoUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := ur.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
