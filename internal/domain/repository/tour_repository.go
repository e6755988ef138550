package repository

import (
	"context"

	"wanderly/internal/domain/entity"
)

// TourRepository adds the reference resolution getOne needs on top of the
// generic operations.
type TourRepository interface {
	ResourceRepository[entity.Tour]

	// ResolveGuides loads the referenced guide users for a tour. Explicit
	// join call, performed by the tour read when guide profiles are wanted.
	ResolveGuides(ctx context.Context, tour *entity.Tour) ([]*entity.User, error)

	// Stats aggregates rating and price figures per difficulty over
	// well-rated tours.
	Stats(ctx context.Context) ([]*entity.TourStats, error)
}

// ReviewRepository is the review collection; reviews only need the generic
// operations plus nested scoping, which FindAll's scope already covers.
type ReviewRepository interface {
	ResourceRepository[entity.Review]
}
