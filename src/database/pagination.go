package database

import (
	"context"

	"pulsepad-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchFilter builds a case-insensitive regex $or over fields.
func SearchFilter(search string, fields ...string) bson.M {
	if search == "" || len(fields) == 0 {
		return bson.M{}
	}
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": search, "$options": "i"}})
	}
	return bson.M{"$or": or}
}

// FindPage counts and fetches one page of documents matching filter.
func FindPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, params models.PaginationParams) ([]T, int64, error) {
	params.Normalize()

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.GetSortOrder())

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0, params.Limit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindAll decodes every document matching filter.
func FindAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
