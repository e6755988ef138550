package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	deliverycontext "wanderly/internal/delivery/context"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/usecase"
)

func TestUserHandler_GetMe_RequiresSession(t *testing.T) {
	h := NewUserHandler(&stubUserUsecase{}, testLogger())

	c, _ := newTestContext(t, http.MethodGet, "/api/v1/users/me", "")

	err := h.GetMe(c)
	assert.ErrorIs(t, err, domainerrors.ErrNotLoggedIn)
}

func TestUserHandler_GetMe_ServesOwnProfile(t *testing.T) {
	userID := bson.NewObjectID()
	uc := &stubUserUsecase{}
	uc.getOneFn = func(_ context.Context, id string) (*entity.User, error) {
		assert.Equal(t, userID.Hex(), id)

		return &entity.User{ID: userID, Name: "Alice"}, nil
	}
	h := NewUserHandler(uc, testLogger())

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/users/me", "")
	deliverycontext.SetCurrentUser(c, &entity.User{ID: userID})

	require.NoError(t, h.GetMe(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
}

func TestUserHandler_UpdateMe_RejectsPasswordFields(t *testing.T) {
	h := NewUserHandler(&stubUserUsecase{}, testLogger())

	c, _ := newTestContext(t, http.MethodPatch, "/api/v1/users/updateMe", `{"name":"Alice","password":"sneaky"}`)
	deliverycontext.SetCurrentUser(c, &entity.User{ID: bson.NewObjectID()})

	err := h.UpdateMe(c)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordRoute)
}

func TestUserHandler_UpdateMe_Success(t *testing.T) {
	uc := &stubUserUsecase{}
	var gotInput *usecase.UpdateMeInput
	uc.updateMeFn = func(_ context.Context, _ string, input *usecase.UpdateMeInput) (*entity.User, error) {
		gotInput = input

		return &entity.User{Name: input.Name}, nil
	}
	h := NewUserHandler(uc, testLogger())

	c, rec := newTestContext(t, http.MethodPatch, "/api/v1/users/updateMe", `{"name":"New Name","photo":"me.jpg"}`)
	deliverycontext.SetCurrentUser(c, &entity.User{ID: bson.NewObjectID()})

	require.NoError(t, h.UpdateMe(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotInput)
	assert.Equal(t, "New Name", gotInput.Name)
	assert.Equal(t, "me.jpg", gotInput.Photo)
	assert.Empty(t, gotInput.Email)
}

func TestUserHandler_DeleteMe_Returns204(t *testing.T) {
	uc := &stubUserUsecase{}
	var deleted string
	uc.deleteMeFn = func(_ context.Context, id string) error {
		deleted = id

		return nil
	}
	h := NewUserHandler(uc, testLogger())

	userID := bson.NewObjectID()
	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/users/deleteMe", "")
	deliverycontext.SetCurrentUser(c, &entity.User{ID: userID})

	require.NoError(t, h.DeleteMe(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID.Hex(), deleted)
}

func TestUserHandler_CreateOne_PropagatesSignupRoute(t *testing.T) {
	uc := &stubUserUsecase{}
	uc.createOneFn = func(_ context.Context, _ *entity.User) (*entity.User, error) {
		return nil, domainerrors.ErrSignupRoute
	}
	h := NewUserHandler(uc, testLogger())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/users", `{"name":"Alice"}`)

	err := h.CreateOne(c)
	assert.ErrorIs(t, err, domainerrors.ErrSignupRoute)
}
