package usecase

import (
	"context"

	"wanderly/internal/domain/entity"
)

// UpdateMeInput carries the profile fields a signed-in user may change.
// Password fields are intentionally absent and rejected before this point.
type UpdateMeInput struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Photo string `json:"photo,omitempty"`
}

// UserUsecase exposes administrative CRUD over users plus the
// self-service profile operations.
type UserUsecase interface {
	ResourceUsecase[entity.User]

	// UpdateMe patches the calling user's own profile fields.
	UpdateMe(ctx context.Context, userID string, input *UpdateMeInput) (*entity.User, error)

	// DeleteMe marks the calling user's account inactive.
	DeleteMe(ctx context.Context, userID string) error
}
