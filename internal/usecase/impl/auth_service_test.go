package impl

import (
	"context"
	"testing"
	"time"

	"wanderly/config"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"
	"wanderly/internal/domain/service"
	"wanderly/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type authServiceFixtures struct {
	service usecase.AuthUsecase
	users   *stubUserRepo
	tokens  *stubTokens
	mailer  *stubMailer
}

func createTestAuthService(_ *testing.T) authServiceFixtures {
	users := &stubUserRepo{}
	tokens := &stubTokens{}
	mailer := &stubMailer{}
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{ResetTokenTTL: 10 * time.Minute}

	srv := NewAuthService(cfg, users, stubHasher{}, tokens, mailer, testLogger())

	return authServiceFixtures{
		service: srv,
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	fx := createTestAuthService(t)

	var inserted *entity.User
	fx.users.insertOneFn = func(_ context.Context, user *entity.User) (*entity.User, error) {
		inserted = user
		user.ID = bson.NewObjectID()

		return user, nil
	}

	out, err := fx.service.Signup(context.Background(), &usecase.SignupInput{
		Name:            "Alice",
		Email:           "Alice@Example.COM",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	})

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, "alice@example.com", inserted.Email)
	assert.Equal(t, "hashed:correct-horse", inserted.PasswordHash)
	assert.Equal(t, entity.RoleUser, inserted.Role)
	assert.True(t, inserted.Active)
	assert.Equal(t, "token-for-"+out.User.ID.Hex(), out.Token)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	fx.users.insertOneFn = func(_ context.Context, _ *entity.User) (*entity.User, error) {
		return nil, repository.ErrDuplicateKey
	}

	_, err := fx.service.Signup(context.Background(), &usecase.SignupInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	})

	assert.ErrorIs(t, err, domainerrors.ErrDuplicateField)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	fx.users.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{PasswordHash: "hashed:right"}, nil
	}

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	userID := bson.NewObjectID()
	fx.users.findByEmailFn = func(_ context.Context, email string) (*entity.User, error) {
		// The mixed-case login email must reach the store lowercased, or an
		// account signed up with different casing can never log in.
		assert.Equal(t, "alice@example.com", email)

		return &entity.User{ID: userID, Email: email, PasswordHash: "hashed:right"}, nil
	}

	out, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "Alice@Example.COM",
		Password: "right",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-for-"+userID.Hex(), out.Token)
}

func TestAuthService_Authenticate_EmptyToken(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Authenticate(context.Background(), "")

	assert.ErrorIs(t, err, domainerrors.ErrNotLoggedIn)
}

func TestAuthService_Authenticate_ExpiredToken(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokens.verifyFn = func(_ string) (*service.SessionClaims, error) {
		return nil, service.ErrTokenExpired
	}

	_, err := fx.service.Authenticate(context.Background(), "stale")

	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthService_Authenticate_BadToken(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokens.verifyFn = func(_ string) (*service.SessionClaims, error) {
		return nil, errors.New("signature mismatch")
	}

	_, err := fx.service.Authenticate(context.Background(), "garbage")

	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Authenticate_UserGone(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Authenticate(context.Background(), "token-for-deadbeef")

	assert.ErrorIs(t, err, domainerrors.ErrTokenUserGone)
}

func TestAuthService_Authenticate_PasswordChangedAfterIssue(t *testing.T) {
	fx := createTestAuthService(t)

	issued := time.Now().Add(-time.Hour)
	fx.tokens.verifyFn = func(_ string) (*service.SessionClaims, error) {
		return &service.SessionClaims{UserID: "abc", IssuedAt: issued}, nil
	}
	fx.users.findWithCredsFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{Active: true, PasswordChangedAt: issued.Add(time.Minute)}, nil
	}

	_, err := fx.service.Authenticate(context.Background(), "old-session")

	assert.ErrorIs(t, err, domainerrors.ErrPasswordChanged)
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	fx := createTestAuthService(t)

	userID := bson.NewObjectID()
	fx.users.findWithCredsFn = func(_ context.Context, id string) (*entity.User, error) {
		assert.Equal(t, userID.Hex(), id)

		return &entity.User{ID: userID, Email: "alice@example.com", Active: true}, nil
	}

	user, err := fx.service.Authenticate(context.Background(), "token-for-"+userID.Hex())

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAuthService_Authenticate_DeactivatedUser(t *testing.T) {
	fx := createTestAuthService(t)

	userID := bson.NewObjectID()
	fx.users.findWithCredsFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{ID: userID, Email: "alice@example.com", Active: false}, nil
	}

	// A token issued before deleteMe must stop working once the account is
	// deactivated.
	_, err := fx.service.Authenticate(context.Background(), "token-for-"+userID.Hex())

	assert.ErrorIs(t, err, domainerrors.ErrTokenUserGone)
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	err := fx.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
		Email: "nobody@example.com",
	}, "https://example.com/reset")

	assert.ErrorIs(t, err, domainerrors.ErrNoUserWithEmail)
}

func TestAuthService_ForgotPassword_StoresHashAndMailsRawToken(t *testing.T) {
	fx := createTestAuthService(t)

	user := &entity.User{Email: "alice@example.com"}
	fx.users.findByEmailFn = func(_ context.Context, email string) (*entity.User, error) {
		assert.Equal(t, "alice@example.com", email)

		return user, nil
	}

	var stored *entity.User
	fx.users.updateResetTokenFn = func(_ context.Context, u *entity.User) error {
		stored = u

		return nil
	}
	fx.users.updateCredentialsFn = func(_ context.Context, _ *entity.User) error {
		t.Fatal("issuing a reset token must not rewrite the password")

		return nil
	}

	err := fx.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
		Email: "Alice@Example.COM",
	}, "https://example.com/reset")

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.ResetTokenHash)
	assert.True(t, stored.ResetTokenExpires.After(time.Now()))

	require.Len(t, fx.mailer.sent, 1)
	sent := fx.mailer.sent[0]
	assert.Equal(t, "alice@example.com", sent.To)
	// The raw token travels in the mail body; only its hash is stored.
	assert.NotContains(t, sent.Body, stored.ResetTokenHash)
	assert.Contains(t, sent.Body, "https://example.com/reset/")
}

func TestAuthService_ForgotPassword_MailFailureRollsBackToken(t *testing.T) {
	fx := createTestAuthService(t)

	user := &entity.User{Email: "alice@example.com"}
	fx.users.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
		return user, nil
	}

	var updates []entity.User
	fx.users.updateResetTokenFn = func(_ context.Context, u *entity.User) error {
		updates = append(updates, *u)

		return nil
	}
	fx.mailer.sendErr = errors.New("smtp down")

	err := fx.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
		Email: "alice@example.com",
	}, "https://example.com/reset")

	assert.ErrorIs(t, err, domainerrors.ErrMailDelivery)
	require.Len(t, updates, 2)
	assert.NotEmpty(t, updates[0].ResetTokenHash)
	assert.Empty(t, updates[1].ResetTokenHash)
	assert.True(t, updates[1].ResetTokenExpires.IsZero())
}

func TestAuthService_ResetPassword_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.ResetPassword(context.Background(), "bogus", &usecase.ResetPasswordInput{
		Password:        "new-password",
		PasswordConfirm: "new-password",
	})

	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	fx := createTestAuthService(t)

	userID := bson.NewObjectID()
	raw := "raw-reset-token"
	user := &entity.User{
		ID:                userID,
		Email:             "alice@example.com",
		PasswordHash:      "hashed:old",
		ResetTokenHash:    entity.HashResetToken(raw),
		ResetTokenExpires: time.Now().Add(5 * time.Minute),
	}

	fx.users.findByResetTokenFn = func(_ context.Context, tokenHash string) (*entity.User, error) {
		if tokenHash != entity.HashResetToken(raw) {
			return nil, repository.ErrNotFound
		}

		return user, nil
	}

	var stored *entity.User
	fx.users.updateCredentialsFn = func(_ context.Context, u *entity.User) error {
		stored = u

		return nil
	}

	out, err := fx.service.ResetPassword(context.Background(), raw, &usecase.ResetPasswordInput{
		Password:        "new-password",
		PasswordConfirm: "new-password",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:new-password", stored.PasswordHash)
	assert.Empty(t, stored.ResetTokenHash)
	assert.False(t, stored.PasswordChangedAt.IsZero())
	assert.True(t, stored.PasswordChangedAt.Before(time.Now()))
	assert.Equal(t, "token-for-"+userID.Hex(), out.Token)
}

func TestAuthService_UpdatePassword_WrongCurrent(t *testing.T) {
	fx := createTestAuthService(t)

	fx.users.findWithCredsFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{PasswordHash: "hashed:actual"}, nil
	}

	_, err := fx.service.UpdatePassword(context.Background(), "abc", &usecase.UpdatePasswordInput{
		PasswordCurrent: "guess",
		Password:        "new-password",
		PasswordConfirm: "new-password",
	})

	assert.ErrorIs(t, err, domainerrors.ErrWrongPassword)
}

func TestAuthService_UpdatePassword_Success(t *testing.T) {
	fx := createTestAuthService(t)

	userID := bson.NewObjectID()
	fx.users.findWithCredsFn = func(_ context.Context, _ string) (*entity.User, error) {
		return &entity.User{ID: userID, PasswordHash: "hashed:old"}, nil
	}

	var stored *entity.User
	fx.users.updateCredentialsFn = func(_ context.Context, u *entity.User) error {
		stored = u

		return nil
	}

	out, err := fx.service.UpdatePassword(context.Background(), userID.Hex(), &usecase.UpdatePasswordInput{
		PasswordCurrent: "old",
		Password:        "new-password",
		PasswordConfirm: "new-password",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:new-password", stored.PasswordHash)
	assert.Equal(t, "token-for-"+userID.Hex(), out.Token)
}
