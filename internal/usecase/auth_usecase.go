package usecase

import (
	"context"

	"wanderly/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordInput carries the email to send a reset token to.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput carries the new credential for a reset-token redemption.
type ResetPasswordInput struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordInput carries a password change for an authenticated user.
type UpdatePasswordInput struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// --- Output DTOs ---

// AuthOutput returns the issued session token together with the user it
// belongs to. The user never carries credential material.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the authentication and session lifecycle: signup,
// login, per-request authentication, and the password reset/change flows.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)

	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Authenticate re-derives the caller's identity from a presented session
	// token. It fails when the token is invalid or expired, when the user no
	// longer exists, or when the token was issued before the user's last
	// password change.
	Authenticate(ctx context.Context, token string) (*entity.User, error)

	// ForgotPassword issues a single-use reset token and dispatches it
	// out-of-band. resetURL is the fully-formed link the user will follow.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput, resetURLBase string) error

	// ResetPassword redeems a raw reset token and logs the user in.
	ResetPassword(ctx context.Context, rawToken string, input *ResetPasswordInput) (*AuthOutput, error)

	// UpdatePassword changes an authenticated user's password and issues a
	// fresh session token.
	UpdatePassword(ctx context.Context, userID string, input *UpdatePasswordInput) (*AuthOutput, error)
}
