package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dbpkg "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/data/repos/mongodoc"
	"github.com/yungbote/contactbook-backend/internal/data/repos/repoerr"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type mongoContactRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewMongoContactRepo(db *mongo.Database, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo", "backend", "mongo")
	return &mongoContactRepo{coll: db.Collection(dbpkg.ContactsCollection), log: repoLog}
}

func (r *mongoContactRepo) Create(ctx context.Context, c *types.Contact) (*types.Contact, error) {
	if c == nil {
		return nil, fmt.Errorf("nil contact")
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	doc, err := mongodoc.FromContact(c)
	if err != nil {
		return nil, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *mongoContactRepo) GetByID(ctx context.Context, id string) (*types.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repoerr.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *mongoContactRepo) GetByEmail(ctx context.Context, email string) (*types.Contact, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.findOne(ctx, bson.M{"email": email}, opts)
}

func (r *mongoContactRepo) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*types.Contact, error) {
	var doc mongodoc.Contact
	var res *mongo.SingleResult
	if opts != nil {
		res = r.coll.FindOne(ctx, filter, opts)
	} else {
		res = r.coll.FindOne(ctx, filter)
	}
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repoerr.ErrNotFound
		}
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *mongoContactRepo) ListByOwner(ctx context.Context, ownerID string, q ListQuery) ([]*types.PopulatedContact, error) {
	out := make([]*types.PopulatedContact, 0)
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return out, nil
	}
	cur, err := r.coll.Aggregate(ctx, listPipeline(owner, q))
	if err != nil {
		return nil, err
	}
	var docs []mongodoc.PopulatedContact
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		out = append(out, docs[i].ToDomain())
	}
	return out, nil
}

// listPipeline pages an owner's contacts by _id and joins the owner document
// without its password.
func listPipeline(owner primitive.ObjectID, q ListQuery) mongo.Pipeline {
	dir := 1
	if q.Order == types.SortDesc {
		dir = -1
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "postedBy", Value: owner}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: dir}}}},
	}
	if q.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(q.Skip)}})
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(q.Limit)}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: dbpkg.UsersCollection},
			{Key: "localField", Value: "postedBy"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "owner.password", Value: 0}}}},
	)
	return pipeline
}

func (r *mongoContactRepo) Update(ctx context.Context, id string, patch types.ContactPatch) (*types.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repoerr.ErrNotFound
	}
	set := patch.Fields(func(f string) string { return f })
	set["updatedAt"] = time.Now().UTC().Truncate(time.Millisecond)

	var doc mongodoc.Contact
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repoerr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *mongoContactRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repoerr.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repoerr.ErrNotFound
	}
	return nil
}
