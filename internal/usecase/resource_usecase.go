// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"net/url"

	"wanderly/internal/domain/repository"
)

// ResourceUsecase is the generic contract every resource exposes to the
// delivery layer: the five CRUD operations, shaped by the query features on
// reads. Concrete resource usecases embed this interface.
type ResourceUsecase[T any] interface {
	// CreateOne inserts a new document built from the request body.
	CreateOne(ctx context.Context, doc *T) (*T, error)

	// GetOne fetches a document by identifier, resolving related documents
	// when the resource defines a populate step.
	GetOne(ctx context.Context, id string) (*T, error)

	// GetAll lists documents shaped by client parameters, optionally
	// pre-scoped (e.g. nested under a parent resource). An empty result is
	// not an error.
	GetAll(ctx context.Context, params url.Values, scope repository.Scope) ([]*T, error)

	// UpdateOne applies a partial update by identifier.
	UpdateOne(ctx context.Context, id string, patch map[string]any) (*T, error)

	// DeleteOne removes a document by identifier.
	DeleteOne(ctx context.Context, id string) error
}
