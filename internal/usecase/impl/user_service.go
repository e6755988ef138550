package impl

import (
	"context"
	"log/slog"

	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"
	"wanderly/internal/usecase"

	"github.com/pkg/errors"
)

// credentialFields are the request body keys that must never flow through a
// generic user update.
var credentialFields = []string{"password", "passwordConfirm", "passwordCurrent"}

// userPatchRules limit administrative updates to the non-credential profile
// fields. Account activation state only changes through deleteMe.
var userPatchRules = patchRules{
	"name":  {coerce: asString, check: "min=1"},
	"email": {coerce: asString, check: "email"},
	"photo": {coerce: asString},
	"role":  {coerce: asString, check: "oneof=user guide lead-guide admin"},
}

// userService implements the UserUsecase interface.
type userService struct {
	crudService[entity.User]

	users repository.UserRepository
}

// NewUserService is the constructor for userService.
func NewUserService(
	users repository.UserRepository,
	logger *slog.Logger,
) usecase.UserUsecase {
	srv := &userService{
		crudService: newCrudService[entity.User](users, logger, "user"),
		users:       users,
	}

	srv.patchRules = userPatchRules
	// Deactivated accounts stay stored but never surface through reads.
	srv.defaultScope = repository.Scope{
		"active": map[string]any{"$ne": false},
	}

	return srv
}

// CreateOne is not served through the generic path; accounts are only created
// through signup so the credential rules always apply.
func (srv *userService) CreateOne(_ context.Context, _ *entity.User) (*entity.User, error) {
	return nil, errors.WithStack(domainerrors.ErrSignupRoute)
}

// UpdateOne applies an administrative partial update. Credential fields are
// rejected rather than silently dropped.
func (srv *userService) UpdateOne(ctx context.Context, id string, patch map[string]any) (*entity.User, error) {
	if err := rejectCredentialFields(patch); err != nil {
		return nil, err
	}
	if email, ok := patch["email"].(string); ok {
		patch["email"] = entity.NormalizeEmail(email)
	}

	return srv.crudService.UpdateOne(ctx, id, patch)
}

// UpdateMe patches the calling user's own profile. Only the allow-listed
// profile fields ever reach the store.
func (srv *userService) UpdateMe(ctx context.Context, userID string, input *usecase.UpdateMeInput) (*entity.User, error) {
	patch := map[string]any{}
	if input.Name != "" {
		patch["name"] = input.Name
	}
	if input.Email != "" {
		patch["email"] = entity.NormalizeEmail(input.Email)
	}
	if input.Photo != "" {
		patch["photo"] = input.Photo
	}

	return srv.crudService.UpdateOne(ctx, userID, patch)
}

// DeleteMe marks the calling user's account inactive. The document is kept so
// references to it stay resolvable.
func (srv *userService) DeleteMe(ctx context.Context, userID string) error {
	if err := srv.users.Deactivate(ctx, userID); err != nil {
		return srv.translate(err, "failed to deactivate user")
	}

	srv.logger.Info("user deactivated", "id", userID)

	return nil
}

func rejectCredentialFields(patch map[string]any) error {
	for _, field := range credentialFields {
		if _, ok := patch[field]; ok {
			return errors.WithStack(domainerrors.ErrPasswordRoute)
		}
	}

	return nil
}
