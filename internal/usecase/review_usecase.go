package usecase

import (
	"context"

	"wanderly/internal/domain/entity"
)

// CreateReviewInput defines the data required to create a review.
// Tour and User are hex object IDs; handlers fill them in from the
// route and the session when the body omits them.
type CreateReviewInput struct {
	Review string  `json:"review" validate:"required"`
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Tour   string  `json:"tour" validate:"required,hexadecimal,len=24"`
	User   string  `json:"user" validate:"required,hexadecimal,len=24"`
}

// ReviewUsecase exposes the generic CRUD operations over reviews.
type ReviewUsecase interface {
	ResourceUsecase[entity.Review]

	// Create builds a review entity from validated input and inserts it.
	Create(ctx context.Context, input *CreateReviewInput) (*entity.Review, error)
}
