// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NormalizeEmail canonicalizes an email address for storage and lookup so the
// unique index and the credential flows agree on a single form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is the account entity. Credential material (password hash, reset token
// fields) is never serialized to clients and is only mutated through the
// dedicated password flows, never through generic updates.
type User struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string        `bson:"name" json:"name"`
	Email             string        `bson:"email" json:"email"`
	Photo             string        `bson:"photo,omitempty" json:"photo,omitempty"`
	Role              Role          `bson:"role" json:"role"`
	PasswordHash      string        `bson:"password" json:"-"`
	PasswordChangedAt time.Time     `bson:"passwordChangedAt,omitempty" json:"-"`
	ResetTokenHash    string        `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpires time.Time     `bson:"resetTokenExpires,omitempty" json:"-"`
	Active            bool          `bson:"active" json:"-"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"-"`
}

// passwordChangeSkew backdates the change timestamp so a token issued in the
// same request as the password mutation still verifies.
const passwordChangeSkew = time.Second

// MarkPasswordChanged records the password mutation instant, skewed one second
// into the past.
func (u *User) MarkPasswordChanged(now time.Time) {
	u.PasswordChangedAt = now.Add(-passwordChangeSkew)
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. A zero change timestamp means the password was never
// changed since the account was created.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}

	return issuedAt.Before(u.PasswordChangedAt)
}

// NewResetToken generates a random reset token, stores only its one-way hash
// plus an expiry on the user, and returns the raw token for out-of-band
// delivery.
func (u *User) NewResetToken(now time.Time, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	token := hex.EncodeToString(raw)
	u.ResetTokenHash = HashResetToken(token)
	u.ResetTokenExpires = now.Add(ttl)

	return token, nil
}

// ClearResetToken discards the reset token state, either after a successful
// reset or when delivery of the raw token failed.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = ""
	u.ResetTokenExpires = time.Time{}
}

// HashResetToken derives the persisted form of a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}
