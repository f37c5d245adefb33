package repositories

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"doc-pager/db"
	"doc-pager/models"
	"doc-pager/pagination"
)

type AddressRepository struct {
	col    *mongo.Collection
	source *CollectionSource[models.Address]
}

func NewAddressRepository(d *mongo.Database) *AddressRepository {
	col := d.Collection(db.AddressesCollection)
	return &AddressRepository{col: col, source: NewCollectionSource[models.Address](col)}
}

// Source exposes the collection to the pagination engine.
func (r *AddressRepository) Source() pagination.Source[models.Address] {
	return r.source
}

// AddressFilter holds the optional list filters. Zero values are ignored.
type AddressFilter struct {
	City   string
	Status string
	UserID *int
}

// ToFilter builds the query document; city matches case-insensitively but exactly.
func (f AddressFilter) ToFilter() pagination.Filter {
	filter := pagination.Filter{}
	if f.City != "" {
		filter["city"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.City) + "$", Options: "i"}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.UserID != nil {
		filter["userId"] = *f.UserID
	}
	return filter
}

// InsertMany inserts addresses in order and returns how many were written.
func (r *AddressRepository) InsertMany(ctx context.Context, items []models.Address) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, mapMongoError(err)
	}
	return len(res.InsertedIDs), nil
}

// Drop removes the collection, indexes included.
func (r *AddressRepository) Drop(ctx context.Context) error {
	return r.col.Drop(ctx)
}

// DeleteByOrderNumber deletes a single address.
func (r *AddressRepository) DeleteByOrderNumber(ctx context.Context, orderNumber string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"orderNumber": orderNumber})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByCity deletes every address in city and returns the number removed.
func (r *AddressRepository) DeleteByCity(ctx context.Context, city string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, AddressFilter{City: city}.ToFilter())
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetStatusForUser updates status on all of a user's addresses and returns
// (matched, modified).
func (r *AddressRepository) SetStatusForUser(ctx context.Context, userID int, status string) (int64, int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{"userId": userID}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// CityCounts returns the number of addresses per city, largest first.
func (r *AddressRepository) CityCounts(ctx context.Context) ([]models.CityCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$city"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	out := []models.CityCount{}
	if err := r.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalsByUser sums order totals per user, optionally restricted to one city,
// highest spender first.
func (r *AddressRepository) TotalsByUser(ctx context.Context, city string) ([]models.UserTotal, error) {
	pipeline := mongo.Pipeline{}
	if city != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M(AddressFilter{City: city}.ToFilter())}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$userId"},
			{Key: "totalSpent", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "ordersCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "totalSpent", Value: -1}, {Key: "_id", Value: 1}}}},
	)
	out := []models.UserTotal{}
	if err := r.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AddressRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cur, err := r.col.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
