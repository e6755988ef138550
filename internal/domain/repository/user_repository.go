package repository

import (
	"context"

	"wanderly/internal/domain/entity"
)

// UserRepository extends the generic resource operations with the credential
// lookups the auth flows need. Generic reads never surface the password hash;
// the credential variants do.
type UserRepository interface {
	ResourceRepository[entity.User]

	// FindByEmail retrieves an active user by their normalized email address,
	// including credential fields.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByIDWithCredentials retrieves an active user by identifier including
	// credential fields.
	FindByIDWithCredentials(ctx context.Context, id string) (*entity.User, error)

	// FindByResetToken retrieves the user holding an unexpired reset token
	// with the given hash.
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error)

	// UpdateCredentials persists password and reset-token fields, which
	// generic updates must never touch.
	UpdateCredentials(ctx context.Context, user *entity.User) error

	// UpdateResetToken persists only the reset-token pair, leaving the
	// password untouched.
	UpdateResetToken(ctx context.Context, user *entity.User) error

	// Deactivate soft-deletes a user instead of purging the document.
	Deactivate(ctx context.Context, id string) error
}
