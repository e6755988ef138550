// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"net/url"
)

// ErrNotFound is a domain-specific error returned when no document matches.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateKey is returned when a write violates a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// Scope is a set of constraints applied before any client-supplied filter,
// e.g. hiding secret tours or pre-scoping reviews to a parent tour.
type Scope map[string]any

// ResourceRepository defines the standard operations shared by every resource
// collection. The application layer depends on this interface, not on the
// concrete document store.
type ResourceRepository[T any] interface {
	// InsertOne persists a new document and returns it with its identifier set.
	InsertOne(ctx context.Context, doc *T) (*T, error)

	// FindByID retrieves a single document by its identifier, constrained by
	// scope so hidden documents stay hidden on direct reads too.
	FindByID(ctx context.Context, id string, scope Scope) (*T, error)

	// FindAll shapes a collection query from client-supplied parameters
	// (filter, sort, field limiting, pagination) constrained by scope.
	FindAll(ctx context.Context, params url.Values, scope Scope) ([]*T, error)

	// UpdateByID applies a partial update and returns the updated document.
	UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error)

	// DeleteByID removes a document by its identifier.
	DeleteByID(ctx context.Context, id string) error
}
