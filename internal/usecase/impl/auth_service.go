package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wanderly/config"
	"wanderly/internal/domain/entity"
	domainerrors "wanderly/internal/domain/errors"
	"wanderly/internal/domain/repository"
	"wanderly/internal/domain/service"
	"wanderly/internal/usecase"

	"github.com/pkg/errors"
)

const defaultResetTokenTTL = 10 * time.Minute

// authService implements the AuthUsecase interface.
type authService struct {
	users    repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	mailer   service.Mailer
	logger   *slog.Logger
	resetTTL time.Duration

	now func() time.Time
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	cfg *config.Config,
	users repository.UserRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.AuthUsecase {
	resetTTL := defaultResetTokenTTL
	if cfg.Auth != nil && cfg.Auth.ResetTokenTTL > 0 {
		resetTTL = cfg.Auth.ResetTokenTTL
	}

	return &authService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// Signup registers a new account with the default role and logs it in.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        entity.NormalizeEmail(input.Email),
		Role:         entity.RoleUser,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    srv.now(),
	}

	created, err := srv.users.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrDuplicateField.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.logger.Info("account created", "email", created.Email)

	return srv.issueSession(created)
}

// Login verifies an email and password pair and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.users.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to look up account")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	return srv.issueSession(user)
}

// Authenticate re-derives the caller's identity from a presented session
// token.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errors.WithStack(domainerrors.ErrNotLoggedIn)
	}

	claims, err := srv.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, errors.WithStack(domainerrors.ErrTokenExpired)
		}

		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token verification failed")
	}

	user, err := srv.users.FindByIDWithCredentials(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.WithStack(domainerrors.ErrTokenUserGone)
		}

		return nil, errors.Wrap(err, "failed to load token holder")
	}

	// A deactivated account is treated the same as a deleted one.
	if !user.Active {
		return nil, errors.WithStack(domainerrors.ErrTokenUserGone)
	}

	if user.ChangedPasswordAfter(claims.IssuedAt) {
		return nil, errors.WithStack(domainerrors.ErrPasswordChanged)
	}

	return user, nil
}

// ForgotPassword issues a single-use reset token and mails it to the account
// holder. The stored token state is rolled back when delivery fails.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput, resetURLBase string) error {
	user, err := srv.users.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errors.WithStack(domainerrors.ErrNoUserWithEmail)
		}

		return errors.Wrap(err, "failed to look up account")
	}

	raw, err := user.NewResetToken(srv.now(), srv.resetTTL)
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	if err := srv.users.UpdateResetToken(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	email := service.Email{
		To:      user.Email,
		Subject: fmt.Sprintf("Your password reset token (valid for %d minutes)", int(srv.resetTTL.Minutes())),
		Body: fmt.Sprintf(
			"Forgot your password? Submit a request with your new password to %s/%s.\nIf you didn't forget your password, please ignore this email.",
			resetURLBase, raw,
		),
	}

	if err := srv.mailer.Send(ctx, email); err != nil {
		srv.logger.Error("reset mail delivery failed", "error", err)

		user.ClearResetToken()
		if clearErr := srv.users.UpdateResetToken(ctx, user); clearErr != nil {
			srv.logger.Error("failed to clear reset token after mail failure", "error", clearErr)
		}

		return errors.WithStack(domainerrors.ErrMailDelivery)
	}

	srv.logger.Info("reset token issued", "email", user.Email)

	return nil
}

// ResetPassword redeems a raw reset token, sets the new password, and logs
// the user in.
func (srv *authService) ResetPassword(ctx context.Context, rawToken string, input *usecase.ResetPasswordInput) (*usecase.AuthOutput, error) {
	user, err := srv.users.FindByResetToken(ctx, entity.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.WithStack(domainerrors.ErrResetTokenInvalid)
		}

		return nil, errors.Wrap(err, "failed to look up reset token")
	}

	if err := srv.setPassword(ctx, user, input.Password); err != nil {
		return nil, err
	}

	srv.logger.Info("password reset", "email", user.Email)

	return srv.issueSession(user)
}

// UpdatePassword changes an authenticated user's password after verifying
// the current one, then issues a fresh session token.
func (srv *authService) UpdatePassword(ctx context.Context, userID string, input *usecase.UpdatePasswordInput) (*usecase.AuthOutput, error) {
	user, err := srv.users.FindByIDWithCredentials(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.WithStack(domainerrors.ErrTokenUserGone)
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	if !srv.hasher.Check(input.PasswordCurrent, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrWrongPassword)
	}

	if err := srv.setPassword(ctx, user, input.Password); err != nil {
		return nil, err
	}

	srv.logger.Info("password updated", "email", user.Email)

	return srv.issueSession(user)
}

// setPassword stores a new password hash, backdates the change instant so the
// session issued alongside it stays valid, and discards any reset token.
func (srv *authService) setPassword(ctx context.Context, user *entity.User, password string) error {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user.PasswordHash = hash
	user.MarkPasswordChanged(srv.now())
	user.ClearResetToken()

	if err := srv.users.UpdateCredentials(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store credentials")
	}

	return nil
}

func (srv *authService) issueSession(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokens.Sign(user.ID.Hex())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.AuthOutput{Token: token, User: user}, nil
}
