package impl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"wanderly/internal/domain/entity"
	"wanderly/internal/domain/repository"
	"wanderly/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRepo is a function-field fake for the generic repository contract.
type stubRepo[T any] struct {
	insertOneFn  func(context.Context, *T) (*T, error)
	findByIDFn   func(context.Context, string, repository.Scope) (*T, error)
	findAllFn    func(context.Context, url.Values, repository.Scope) ([]*T, error)
	updateByIDFn func(context.Context, string, map[string]any) (*T, error)
	deleteByIDFn func(context.Context, string) error
}

func (s *stubRepo[T]) InsertOne(ctx context.Context, doc *T) (*T, error) {
	if s.insertOneFn == nil {
		return doc, nil
	}

	return s.insertOneFn(ctx, doc)
}

func (s *stubRepo[T]) FindByID(ctx context.Context, id string, scope repository.Scope) (*T, error) {
	if s.findByIDFn == nil {
		return nil, repository.ErrNotFound
	}

	return s.findByIDFn(ctx, id, scope)
}

func (s *stubRepo[T]) FindAll(ctx context.Context, params url.Values, scope repository.Scope) ([]*T, error) {
	if s.findAllFn == nil {
		return nil, nil
	}

	return s.findAllFn(ctx, params, scope)
}

func (s *stubRepo[T]) UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error) {
	if s.updateByIDFn == nil {
		return nil, repository.ErrNotFound
	}

	return s.updateByIDFn(ctx, id, patch)
}

func (s *stubRepo[T]) DeleteByID(ctx context.Context, id string) error {
	if s.deleteByIDFn == nil {
		return repository.ErrNotFound
	}

	return s.deleteByIDFn(ctx, id)
}

// stubTourRepo adds the tour-specific lookups on top of the generic stub.
type stubTourRepo struct {
	stubRepo[entity.Tour]

	resolveGuidesFn func(context.Context, *entity.Tour) ([]*entity.User, error)
	statsFn         func(context.Context) ([]*entity.TourStats, error)
}

func (s *stubTourRepo) ResolveGuides(ctx context.Context, tour *entity.Tour) ([]*entity.User, error) {
	if s.resolveGuidesFn == nil {
		return nil, nil
	}

	return s.resolveGuidesFn(ctx, tour)
}

func (s *stubTourRepo) Stats(ctx context.Context) ([]*entity.TourStats, error) {
	if s.statsFn == nil {
		return nil, nil
	}

	return s.statsFn(ctx)
}

// stubUserRepo adds the credential lookups on top of the generic stub.
type stubUserRepo struct {
	stubRepo[entity.User]

	findByEmailFn       func(context.Context, string) (*entity.User, error)
	findWithCredsFn     func(context.Context, string) (*entity.User, error)
	findByResetTokenFn  func(context.Context, string) (*entity.User, error)
	updateCredentialsFn func(context.Context, *entity.User) error
	updateResetTokenFn  func(context.Context, *entity.User) error
	deactivateFn        func(context.Context, string) error
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findByEmailFn == nil {
		return nil, repository.ErrNotFound
	}

	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepo) FindByIDWithCredentials(ctx context.Context, id string) (*entity.User, error) {
	if s.findWithCredsFn == nil {
		return nil, repository.ErrNotFound
	}

	return s.findWithCredsFn(ctx, id)
}

func (s *stubUserRepo) FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	if s.findByResetTokenFn == nil {
		return nil, repository.ErrNotFound
	}

	return s.findByResetTokenFn(ctx, tokenHash)
}

func (s *stubUserRepo) UpdateCredentials(ctx context.Context, user *entity.User) error {
	if s.updateCredentialsFn == nil {
		return nil
	}

	return s.updateCredentialsFn(ctx, user)
}

func (s *stubUserRepo) UpdateResetToken(ctx context.Context, user *entity.User) error {
	if s.updateResetTokenFn == nil {
		return nil
	}

	return s.updateResetTokenFn(ctx, user)
}

func (s *stubUserRepo) Deactivate(ctx context.Context, id string) error {
	if s.deactivateFn == nil {
		return nil
	}

	return s.deactivateFn(ctx, id)
}

// stubHasher is a reversible stand-in for bcrypt.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubTokens issues predictable tokens and verifies via a function field.
type stubTokens struct {
	verifyFn func(string) (*service.SessionClaims, error)
}

func (stubTokens) Sign(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func (s *stubTokens) Verify(token string) (*service.SessionClaims, error) {
	if s.verifyFn == nil {
		return &service.SessionClaims{
			UserID:   strings.TrimPrefix(token, "token-for-"),
			IssuedAt: time.Now(),
		}, nil
	}

	return s.verifyFn(token)
}

func (stubTokens) TTL() time.Duration {
	return 90 * 24 * time.Hour
}

// stubMailer records outbound mail and fails on demand.
type stubMailer struct {
	sent    []service.Email
	sendErr error
}

func (s *stubMailer) Send(_ context.Context, email service.Email) error {
	if s.sendErr != nil {
		return s.sendErr
	}

	s.sent = append(s.sent, email)

	return nil
}
