// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"

	"github.com/pkg/errors"
)

// hookFunc mutates or inspects a document at a fixed point of an operation.
type hookFunc[T any] func(ctx context.Context, doc *T) error

// crudService is the shared implementation behind every resource usecase.
// Per-resource services embed it and supply hooks plus a default read scope;
// the operations themselves stay identical across resources.
type crudService[T any] struct {
	repo     repository.ResourceRepository[T]
	logger   *slog.Logger
	resource string

	// beforeSave hooks run before InsertOne, in order.
	beforeSave []hookFunc[T]
	// afterLoad hooks run on every document returned by a read, in order.
	afterLoad []hookFunc[T]
	// defaultScope constrains every read before client parameters apply.
	defaultScope repository.Scope
	// patchRules constrain what a partial update may touch and with which
	// values.
	patchRules patchRules

	now func() time.Time
}

func newCrudService[T any](
	repo repository.ResourceRepository[T],
	logger *slog.Logger,
	resource string,
) crudService[T] {
	return crudService[T]{
		repo:     repo,
		logger:   logger,
		resource: resource,
		now:      time.Now,
	}
}

// CreateOne inserts a new document built from the request body.
func (srv *crudService[T]) CreateOne(ctx context.Context, doc *T) (*T, error) {
	for _, hook := range srv.beforeSave {
		if err := hook(ctx, doc); err != nil {
			return nil, err
		}
	}

	created, err := srv.repo.InsertOne(ctx, doc)
	if err != nil {
		return nil, srv.translate(err, "failed to create "+srv.resource)
	}

	srv.logger.Info("document created", "resource", srv.resource)

	return created, nil
}

// GetOne fetches a document by identifier. The default scope applies so
// documents hidden from lists stay hidden here too.
func (srv *crudService[T]) GetOne(ctx context.Context, id string) (*T, error) {
	doc, err := srv.repo.FindByID(ctx, id, srv.defaultScope)
	if err != nil {
		return nil, srv.translate(err, "failed to get "+srv.resource)
	}

	for _, hook := range srv.afterLoad {
		if err := hook(ctx, doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// GetAll lists documents shaped by client parameters. The default scope is
// applied first; a caller-supplied scope overrides it key by key.
func (srv *crudService[T]) GetAll(ctx context.Context, params url.Values, scope repository.Scope) ([]*T, error) {
	merged := make(repository.Scope, len(srv.defaultScope)+len(scope))
	for k, v := range srv.defaultScope {
		merged[k] = v
	}
	for k, v := range scope {
		merged[k] = v
	}

	docs, err := srv.repo.FindAll(ctx, params, merged)
	if err != nil {
		return nil, srv.translate(err, "failed to list "+srv.resource)
	}

	for _, doc := range docs {
		for _, hook := range srv.afterLoad {
			if err := hook(ctx, doc); err != nil {
				return nil, err
			}
		}
	}

	return docs, nil
}

// UpdateOne applies a partial update by identifier after validating the patch
// against the resource's rules.
func (srv *crudService[T]) UpdateOne(ctx context.Context, id string, patch map[string]any) (*T, error) {
	if srv.patchRules != nil {
		if err := srv.patchRules.apply(patch); err != nil {
			return nil, err
		}
	}

	doc, err := srv.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, srv.translate(err, "failed to update "+srv.resource)
	}

	srv.logger.Info("document updated", "resource", srv.resource, "id", id)

	return doc, nil
}

// DeleteOne removes a document by identifier.
func (srv *crudService[T]) DeleteOne(ctx context.Context, id string) error {
	if err := srv.repo.DeleteByID(ctx, id); err != nil {
		return srv.translate(err, "failed to delete "+srv.resource)
	}

	srv.logger.Info("document deleted", "resource", srv.resource, "id", id)

	return nil
}

// translate maps persistence sentinels onto the application error taxonomy.
func (srv *crudService[T]) translate(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return domainerrors.ErrDocumentNotFound.WrapMessage(msg)
	case errors.Is(err, repository.ErrDuplicateKey):
		return domainerrors.ErrDuplicateField.WrapMessage(msg)
	default:
		return errors.Wrap(err, msg)
	}
}
