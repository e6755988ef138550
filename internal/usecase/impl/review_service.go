package impl

import (
	"context"
	"log/slog"

	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"
	"wanderly/internal/usecase"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// reviewPatchRules mirror the constraints enforced on review creation. The
// tour and author references are fixed at creation.
var reviewPatchRules = patchRules{
	"review": {coerce: asString, check: "min=1"},
	"rating": {coerce: asNumber, check: "gte=1,lte=5"},
}

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	crudService[entity.Review]
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	reviews repository.ReviewRepository,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	srv := &reviewService{
		crudService: newCrudService[entity.Review](reviews, logger, "review"),
	}

	srv.beforeSave = []hookFunc[entity.Review]{srv.stamp}
	srv.patchRules = reviewPatchRules

	return srv
}

func (srv *reviewService) stamp(_ context.Context, review *entity.Review) error {
	now := srv.now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	return nil
}

// Create builds a review entity from validated input and inserts it.
func (srv *reviewService) Create(ctx context.Context, input *usecase.CreateReviewInput) (*entity.Review, error) {
	tourID, err := bson.ObjectIDFromHex(input.Tour)
	if err != nil {
		return nil, domainerrors.ErrValidation.WrapMessage("invalid tour id")
	}

	userID, err := bson.ObjectIDFromHex(input.User)
	if err != nil {
		return nil, domainerrors.ErrValidation.WrapMessage("invalid user id")
	}

	review := &entity.Review{
		Review: input.Review,
		Rating: input.Rating,
		TourID: tourID,
		UserID: userID,
	}

	return srv.CreateOne(ctx, review)
}
