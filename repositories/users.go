package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"doc-pager/db"
	"doc-pager/models"
	"doc-pager/pagination"
)

type UserRepository struct {
	col    *mongo.Collection
	source *CollectionSource[models.User]
}

func NewUserRepository(d *mongo.Database) *UserRepository {
	col := d.Collection(db.UsersCollection)
	return &UserRepository{col: col, source: NewCollectionSource[models.User](col)}
}

func (r *UserRepository) Source() pagination.Source[models.User] {
	return r.source
}

// Insert stores u and fills in its ID and CreatedAt.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return mapMongoError(err)
	}
	return nil
}

// FindByID returns a user by its ObjectID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapMongoError(err)
	}
	return &u, nil
}
