package repositories

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"doc-pager/pagination"
)

// CollectionSource serves pagination queries for one collection, decoding documents into T.
type CollectionSource[T any] struct {
	col *mongo.Collection
}

var _ pagination.Source[struct{}] = (*CollectionSource[struct{}])(nil)

func NewCollectionSource[T any](col *mongo.Collection) *CollectionSource[T] {
	return &CollectionSource[T]{col: col}
}

// Find returns documents matching filter ordered by sort, after skipping skip documents.
func (s *CollectionSource[T]) Find(ctx context.Context, filter pagination.Filter, sort pagination.Sort, skip, limit int64) ([]T, error) {
	findOpts := options.Find().SetSort(sortDoc(sort)).SetSkip(skip).SetLimit(limit)
	return s.find(ctx, toBSON(filter), findOpts)
}

// Count returns the number of documents matching filter.
func (s *CollectionSource[T]) Count(ctx context.Context, filter pagination.Filter) (int64, error) {
	return s.col.CountDocuments(ctx, toBSON(filter))
}

// FindAfter returns up to limit documents strictly after cursor in sort order,
// using a keyset predicate instead of skip.
func (s *CollectionSource[T]) FindAfter(ctx context.Context, filter pagination.Filter, sort pagination.Sort, cursor string, limit int64) ([]T, error) {
	values, err := decodeCursor(cursor, sort)
	if err != nil {
		return nil, err
	}
	query := keysetFilter(sort, values)
	if len(filter) > 0 {
		query = bson.M{"$and": bson.A{toBSON(filter), query}}
	}
	findOpts := options.Find().SetSort(sortDoc(sort)).SetLimit(limit)
	return s.find(ctx, query, findOpts)
}

// CursorOf encodes the values of item's sort fields. Dotted field names address
// embedded documents.
func (s *CollectionSource[T]) CursorOf(item T, sort pagination.Sort) (string, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("marshal cursor item: %w", err)
	}
	values := make(bson.A, 0, len(sort))
	for _, f := range sort {
		rv, err := bson.Raw(raw).LookupErr(strings.Split(f.Field, ".")...)
		if err != nil {
			return "", fmt.Errorf("cursor field %q: %w", f.Field, err)
		}
		var v interface{}
		if err := rv.Unmarshal(&v); err != nil {
			return "", fmt.Errorf("cursor field %q: %w", f.Field, err)
		}
		values = append(values, v)
	}
	return encodeCursor(sort, values)
}

func (s *CollectionSource[T]) find(ctx context.Context, filter interface{}, findOpts *options.FindOptions) ([]T, error) {
	cur, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := []T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func toBSON(filter pagination.Filter) bson.M {
	if len(filter) == 0 {
		return bson.M{}
	}
	return bson.M(filter)
}

func sortDoc(sort pagination.Sort) bson.D {
	d := make(bson.D, 0, len(sort))
	for _, f := range sort {
		d = append(d, bson.E{Key: f.Field, Value: int(f.Direction)})
	}
	return d
}

// keysetFilter expands (a, b, c) > (va, vb, vc) into
// a > va OR (a == va AND b > vb) OR (a == va AND b == vb AND c > vc),
// flipping > to < for descending fields.
func keysetFilter(sort pagination.Sort, values bson.A) bson.M {
	or := make(bson.A, 0, len(sort))
	for i, f := range sort {
		clause := make(bson.D, 0, i+1)
		for j := 0; j < i; j++ {
			clause = append(clause, bson.E{Key: sort[j].Field, Value: values[j]})
		}
		op := "$gt"
		if f.Direction == pagination.Desc {
			op = "$lt"
		}
		clause = append(clause, bson.E{Key: f.Field, Value: bson.M{op: values[i]}})
		or = append(or, clause)
	}
	return bson.M{"$or": or}
}

// cursorPayload records the sort a cursor was issued for next to the key values.
type cursorPayload struct {
	Sort   string `bson:"s"`
	Values bson.A `bson:"v"`
}

func encodeCursor(sort pagination.Sort, values bson.A) (string, error) {
	b, err := bson.Marshal(cursorPayload{Sort: sort.String(), Values: values})
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// decodeCursor rejects tokens that are not ours or that were issued for a different sort.
func decodeCursor(cursor string, sort pagination.Sort) (bson.A, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: cursor is not base64url", pagination.ErrInvalidParameter)
	}
	var p cursorPayload
	if err := bson.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: cursor payload: %v", pagination.ErrInvalidParameter, err)
	}
	if p.Sort != sort.String() {
		return nil, fmt.Errorf("%w: cursor was issued for sort %q, not %q", pagination.ErrInvalidParameter, p.Sort, sort.String())
	}
	if len(p.Values) != len(sort) {
		return nil, fmt.Errorf("%w: cursor has %d values for %d sort fields", pagination.ErrInvalidParameter, len(p.Values), len(sort))
	}
	return p.Values, nil
}
