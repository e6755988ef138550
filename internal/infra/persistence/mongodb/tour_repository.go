package mongodb

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"wanderly/internal/domain/entity"
	"wanderly/internal/domain/repository"
)

const tourCollection = "tours"

var tourInternalFields = []string{
	"secretTour",
	"updatedAt",
}

type tourRepository struct {
	*resources[entity.Tour]
	users *mongo.Collection
}

// NewTourRepository builds the tour repository and ensures its indexes exist.
func NewTourRepository(ctx context.Context, logger *slog.Logger, db *mongo.Database) (repository.TourRepository, error) {
	coll := db.Collection(tourCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "slug", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}},
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Error("Failed to create tour indexes", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create tour indexes")
	}

	return &tourRepository{
		resources: newResources[entity.Tour](db, tourCollection, tourInternalFields...),
		users:     db.Collection(userCollection),
	}, nil
}

// ResolveGuides loads the referenced guide users for a tour.
func (r *tourRepository) ResolveGuides(ctx context.Context, tour *entity.Tour) ([]*entity.User, error) {
	if len(tour.Guides) == 0 {
		return nil, nil
	}

	projection := bson.M{}
	for _, field := range userInternalFields {
		projection[field] = 0
	}

	cursor, err := r.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": tour.Guides}},
		options.Find().SetProjection(projection))
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve tour guides")
	}
	defer cursor.Close(ctx)

	var guides []*entity.User
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, errors.Wrap(err, "failed to decode tour guides")
	}

	return guides, nil
}

// Stats aggregates rating and price figures per difficulty over tours rated
// 4.5 or better.
func (r *tourRepository) Stats(ctx context.Context) ([]*entity.TourStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ratingsAverage": bson.M{"$gte": 4.5}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$difficulty",
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate tour stats")
	}
	defer cursor.Close(ctx)

	var stats []*entity.TourStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, errors.Wrap(err, "failed to decode tour stats")
	}

	return stats, nil
}
