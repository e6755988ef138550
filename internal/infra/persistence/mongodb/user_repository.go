package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"wanderly/internal/domain/entity"
	"wanderly/internal/domain/repository"
)

const userCollection = "users"

// Credential and bookkeeping fields, hidden from every generic read.
var userInternalFields = []string{
	"password",
	"passwordChangedAt",
	"resetToken",
	"resetTokenExpires",
	"active",
	"updatedAt",
}

type userRepository struct {
	*resources[entity.User]
	coll *mongo.Collection
}

// NewUserRepository builds the user repository and ensures the unique email
// index exists.
func NewUserRepository(ctx context.Context, logger *slog.Logger, db *mongo.Database) (repository.UserRepository, error) {
	coll := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "resetToken", Value: 1}},
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Error("Failed to create user indexes", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user indexes")
	}

	return &userRepository{
		resources: newResources[entity.User](db, userCollection, userInternalFields...),
		coll:      coll,
	}, nil
}

// FindByEmail retrieves an active user by normalized email, credential fields
// included. Used by login and forgotPassword only.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findWithCredentials(ctx, bson.M{
		"email":  email,
		"active": bson.M{"$ne": false},
	})
}

// FindByIDWithCredentials retrieves an active user by identifier, credential
// fields included. Used by the protect guard and updatePassword.
func (r *userRepository) FindByIDWithCredentials(ctx context.Context, id string) (*entity.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	return r.findWithCredentials(ctx, bson.M{
		"_id":    objectID,
		"active": bson.M{"$ne": false},
	})
}

// FindByResetToken retrieves the user holding an unexpired reset token with
// the given hash.
func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	return r.findWithCredentials(ctx, bson.M{
		"resetToken":        tokenHash,
		"resetTokenExpires": bson.M{"$gt": time.Now()},
	})
}

// UpdateCredentials persists password and reset-token fields. Cleared reset
// fields are unset rather than stored empty.
func (r *userRepository) UpdateCredentials(ctx context.Context, user *entity.User) error {
	set := bson.M{
		"password":  user.PasswordHash,
		"updatedAt": time.Now(),
	}
	if !user.PasswordChangedAt.IsZero() {
		set["passwordChangedAt"] = user.PasswordChangedAt
	}

	update := bson.M{"$set": set}
	if user.ResetTokenHash == "" {
		update["$unset"] = bson.M{"resetToken": "", "resetTokenExpires": ""}
	} else {
		set["resetToken"] = user.ResetTokenHash
		set["resetTokenExpires"] = user.ResetTokenExpires
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return errors.Wrap(err, "failed to update credentials")
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateResetToken persists only the reset-token pair. Cleared fields are
// unset rather than stored empty.
func (r *userRepository) UpdateResetToken(ctx context.Context, user *entity.User) error {
	var update bson.M
	if user.ResetTokenHash == "" {
		update = bson.M{"$unset": bson.M{"resetToken": "", "resetTokenExpires": ""}}
	} else {
		update = bson.M{"$set": bson.M{
			"resetToken":        user.ResetTokenHash,
			"resetTokenExpires": user.ResetTokenExpires,
		}}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return errors.Wrap(err, "failed to update reset token")
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Deactivate soft-deletes a user instead of purging the document.
func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{"active": false, "updatedAt": time.Now()},
	})
	if err != nil {
		return errors.Wrap(err, "failed to deactivate user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *userRepository) findWithCredentials(ctx context.Context, filter bson.M) (*entity.User, error) {
	result := r.coll.FindOne(ctx, filter)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	var user entity.User
	if err := result.Decode(&user); err != nil {
		return nil, errors.Wrap(err, "failed to decode user")
	}

	return &user, nil
}
