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

const reviewCollection = "reviews"

var reviewInternalFields = []string{
	"updatedAt",
}

type reviewRepository struct {
	*resources[entity.Review]
}

// NewReviewRepository builds the review repository and ensures its indexes
// exist. One review per user per tour.
func NewReviewRepository(ctx context.Context, logger *slog.Logger, db *mongo.Database) (repository.ReviewRepository, error) {
	coll := db.Collection(reviewCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Error("Failed to create review indexes", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create review indexes")
	}

	return &reviewRepository{
		resources: newResources[entity.Review](db, reviewCollection, reviewInternalFields...),
	}, nil
}
