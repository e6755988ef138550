package impl

import (
	"context"
	"log/slog"

	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"
	"wanderly/internal/usecase"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// tourPatchRules mirror the constraints enforced on tour creation.
var tourPatchRules = patchRules{
	"name":            {coerce: asString, check: "min=10,max=40"},
	"slug":            {coerce: asString},
	"duration":        {coerce: asInt, check: "gt=0"},
	"maxGroupSize":    {coerce: asInt, check: "gt=0"},
	"difficulty":      {coerce: asString, check: "oneof=easy medium difficult"},
	"ratingsAverage":  {coerce: asNumber, check: "gte=1,lte=5"},
	"ratingsQuantity": {coerce: asInt, check: "gte=0"},
	"price":           {coerce: asNumber, check: "gt=0"},
	"priceDiscount":   {coerce: asNumber, check: "gte=0"},
	"summary":         {coerce: asString},
	"description":     {coerce: asString},
	"imageCover":      {coerce: asString},
	"images":          {coerce: asStrings},
	"startDates":      {coerce: asTimes},
	"secretTour":      {coerce: asBool},
	"guides":          {coerce: asObjectIDs},
}

// tourService implements the TourUsecase interface.
type tourService struct {
	crudService[entity.Tour]

	tours repository.TourRepository
}

// NewTourService is the constructor for tourService.
func NewTourService(
	tours repository.TourRepository,
	logger *slog.Logger,
) usecase.TourUsecase {
	srv := &tourService{
		crudService: newCrudService[entity.Tour](tours, logger, "tour"),
		tours:       tours,
	}

	srv.beforeSave = []hookFunc[entity.Tour]{srv.prepare}
	srv.patchRules = tourPatchRules
	// Secret tours never surface through reads.
	srv.defaultScope = repository.Scope{
		"secretTour": map[string]any{"$ne": true},
	}

	return srv
}

// prepare derives stored fields before a tour is written.
func (srv *tourService) prepare(_ context.Context, tour *entity.Tour) error {
	tour.Slugify()
	tour.RoundRating()

	now := srv.now()
	if tour.CreatedAt.IsZero() {
		tour.CreatedAt = now
	}
	tour.UpdatedAt = now

	return nil
}

// Create builds a tour entity from validated input and inserts it.
func (srv *tourService) Create(ctx context.Context, input *usecase.CreateTourInput) (*entity.Tour, error) {
	guides := make([]bson.ObjectID, 0, len(input.Guides))
	for _, raw := range input.Guides {
		id, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return nil, domainerrors.ErrValidation.WrapMessage("invalid guide id")
		}
		guides = append(guides, id)
	}

	rating := input.RatingsAverage
	if rating == 0 {
		rating = 4.5
	}

	tour := &entity.Tour{
		Name:           input.Name,
		Duration:       input.Duration,
		MaxGroupSize:   input.MaxGroupSize,
		Difficulty:     entity.Difficulty(input.Difficulty),
		RatingsAverage: rating,
		Price:          input.Price,
		PriceDiscount:  input.PriceDiscount,
		Summary:        input.Summary,
		Description:    input.Description,
		ImageCover:     input.ImageCover,
		Images:         input.Images,
		StartDates:     input.StartDates,
		SecretTour:     input.SecretTour,
		Guides:         guides,
	}

	return srv.CreateOne(ctx, tour)
}

// UpdateOne applies a partial update, keeping the slug in sync when the name
// changes.
func (srv *tourService) UpdateOne(ctx context.Context, id string, patch map[string]any) (*entity.Tour, error) {
	if name, ok := patch["name"].(string); ok {
		renamed := entity.Tour{Name: name}
		renamed.Slugify()
		patch["slug"] = renamed.Slug
	}

	return srv.crudService.UpdateOne(ctx, id, patch)
}

// GetOne fetches a tour and resolves its guide references.
func (srv *tourService) GetOne(ctx context.Context, id string) (*entity.Tour, error) {
	tour, err := srv.crudService.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(tour.Guides) > 0 {
		profiles, err := srv.tours.ResolveGuides(ctx, tour)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve tour guides")
		}
		tour.GuideProfiles = profiles
	}

	return tour, nil
}

// Stats aggregates rating and price figures per difficulty.
func (srv *tourService) Stats(ctx context.Context) ([]*entity.TourStats, error) {
	stats, err := srv.tours.Stats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate tour stats")
	}

	return stats, nil
}
