package usecase

import (
	"context"
	"time"

	"wanderly/internal/domain/entity"
)

// CreateTourInput defines the data required to create a tour.
type CreateTourInput struct {
	Name           string      `json:"name" validate:"required,min=10,max=40"`
	Duration       int         `json:"duration" validate:"required,gt=0"`
	MaxGroupSize   int         `json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty     string      `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price          float64     `json:"price" validate:"required,gt=0"`
	PriceDiscount  float64     `json:"priceDiscount,omitempty" validate:"omitempty,gt=0,ltfield=Price"`
	RatingsAverage float64     `json:"ratingsAverage,omitempty" validate:"omitempty,gte=1,lte=5"`
	Summary        string      `json:"summary" validate:"required"`
	Description    string      `json:"description,omitempty"`
	ImageCover     string      `json:"imageCover,omitempty"`
	Images         []string    `json:"images,omitempty"`
	StartDates     []time.Time `json:"startDates,omitempty"`
	SecretTour     bool        `json:"secretTour,omitempty"`
	Guides         []string    `json:"guides,omitempty" validate:"dive,hexadecimal,len=24"`
}

// TourUsecase exposes the generic CRUD operations plus the tour aggregations.
type TourUsecase interface {
	ResourceUsecase[entity.Tour]

	// Create builds a tour entity from validated input and inserts it.
	Create(ctx context.Context, input *CreateTourInput) (*entity.Tour, error)

	// Stats aggregates rating and price figures per difficulty.
	Stats(ctx context.Context) ([]*entity.TourStats, error)
}
