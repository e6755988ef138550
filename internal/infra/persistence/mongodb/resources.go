package mongodb

import (
	"context"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"wanderly/internal/domain/repository"
	"wanderly/internal/infra/persistence/mongodb/query"
)

// resources is the generic collection adapter behind every resource
// repository. It implements repository.ResourceRepository[T] for any document
// type and enforces the force-exclusion of internal fields on every read.
type resources[T any] struct {
	coll     *mongo.Collection
	internal []string
}

func newResources[T any](db *mongo.Database, name string, internalFields ...string) *resources[T] {
	return &resources[T]{
		coll:     db.Collection(name),
		internal: internalFields,
	}
}

// InsertOne persists a new document and returns it with its identifier set.
func (r *resources[T]) InsertOne(ctx context.Context, doc *T) (*T, error) {
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateKey
		}

		return nil, errors.Wrap(err, "failed to insert document")
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("inserted identifier is not an object id")
	}

	// Re-read through the standard projection so internal fields never leak
	// out of the create path.
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByID retrieves a single document by its identifier, constrained by
// scope. A malformed identifier matches nothing.
func (r *resources[T]) FindByID(ctx context.Context, id string, scope repository.Scope) (*T, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	filter := bson.M{"_id": objectID}
	for field, constraint := range scope {
		filter[field] = constraint
	}

	return r.findOne(ctx, filter)
}

// FindAll shapes the collection query from raw request parameters and runs it
// constrained by scope. Scope constraints win over client filters.
func (r *resources[T]) FindAll(ctx context.Context, params url.Values, scope repository.Scope) ([]*T, error) {
	features := query.Build(params, r.internal...)

	for field, constraint := range scope {
		features.Filter[field] = constraint
	}

	findOptions := options.Find().
		SetSort(features.Sort).
		SetSkip(features.Skip).
		SetLimit(features.Limit)
	if features.Projection != nil {
		findOptions.SetProjection(features.Projection)
	}

	cursor, err := r.coll.Find(ctx, features.Filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query collection")
	}
	defer cursor.Close(ctx)

	var docs []*T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode documents")
	}

	return docs, nil
}

// UpdateByID applies a partial update with the merged document returned.
// Internal fields are scrubbed from the patch before it reaches the store.
func (r *resources[T]) UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{}
	for field, value := range patch {
		set[field] = value
	}
	for _, field := range r.internal {
		delete(set, field)
	}
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": objectID})
	}
	set["updatedAt"] = time.Now()

	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if projection := r.exclusionProjection(); projection != nil {
		updateOptions.SetProjection(projection)
	}

	result := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, updateOptions)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateKey
		}

		return nil, errors.Wrap(err, "failed to update document")
	}

	var doc T
	if err := result.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode updated document")
	}

	return &doc, nil
}

// DeleteByID removes a document by its identifier.
func (r *resources[T]) DeleteByID(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return errors.Wrap(err, "failed to delete document")
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *resources[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	findOptions := options.FindOne()
	if projection := r.exclusionProjection(); projection != nil {
		findOptions.SetProjection(projection)
	}

	result := r.coll.FindOne(ctx, filter, findOptions)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find document")
	}

	var doc T
	if err := result.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}

	return &doc, nil
}

func (r *resources[T]) exclusionProjection() bson.M {
	if len(r.internal) == 0 {
		return nil
	}

	projection := bson.M{}
	for _, field := range r.internal {
		projection[field] = 0
	}

	return projection
}
