package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"wanderly/internal/delivery/http/validator"
	"wanderly/internal/domain/entity"
	"wanderly/internal/domain/repository"
	"wanderly/internal/domain/service"
	"wanderly/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// stubResourceUsecase is a function-field fake for the generic usecase
// contract.
type stubResourceUsecase[T any] struct {
	createOneFn func(context.Context, *T) (*T, error)
	getOneFn    func(context.Context, string) (*T, error)
	getAllFn    func(context.Context, url.Values, repository.Scope) ([]*T, error)
	updateOneFn func(context.Context, string, map[string]any) (*T, error)
	deleteOneFn func(context.Context, string) error
}

func (s *stubResourceUsecase[T]) CreateOne(ctx context.Context, doc *T) (*T, error) {
	if s.createOneFn == nil {
		return doc, nil
	}

	return s.createOneFn(ctx, doc)
}

func (s *stubResourceUsecase[T]) GetOne(ctx context.Context, id string) (*T, error) {
	if s.getOneFn == nil {
		return new(T), nil
	}

	return s.getOneFn(ctx, id)
}

func (s *stubResourceUsecase[T]) GetAll(ctx context.Context, params url.Values, scope repository.Scope) ([]*T, error) {
	if s.getAllFn == nil {
		return nil, nil
	}

	return s.getAllFn(ctx, params, scope)
}

func (s *stubResourceUsecase[T]) UpdateOne(ctx context.Context, id string, patch map[string]any) (*T, error) {
	if s.updateOneFn == nil {
		return new(T), nil
	}

	return s.updateOneFn(ctx, id, patch)
}

func (s *stubResourceUsecase[T]) DeleteOne(ctx context.Context, id string) error {
	if s.deleteOneFn == nil {
		return nil
	}

	return s.deleteOneFn(ctx, id)
}

type stubTourUsecase struct {
	stubResourceUsecase[entity.Tour]

	createFn func(context.Context, *usecase.CreateTourInput) (*entity.Tour, error)
	statsFn  func(context.Context) ([]*entity.TourStats, error)
}

func (s *stubTourUsecase) Create(ctx context.Context, input *usecase.CreateTourInput) (*entity.Tour, error) {
	if s.createFn == nil {
		return &entity.Tour{Name: input.Name}, nil
	}

	return s.createFn(ctx, input)
}

func (s *stubTourUsecase) Stats(ctx context.Context) ([]*entity.TourStats, error) {
	if s.statsFn == nil {
		return nil, nil
	}

	return s.statsFn(ctx)
}

type stubUserUsecase struct {
	stubResourceUsecase[entity.User]

	updateMeFn func(context.Context, string, *usecase.UpdateMeInput) (*entity.User, error)
	deleteMeFn func(context.Context, string) error
}

func (s *stubUserUsecase) UpdateMe(ctx context.Context, userID string, input *usecase.UpdateMeInput) (*entity.User, error) {
	if s.updateMeFn == nil {
		return &entity.User{}, nil
	}

	return s.updateMeFn(ctx, userID, input)
}

func (s *stubUserUsecase) DeleteMe(ctx context.Context, userID string) error {
	if s.deleteMeFn == nil {
		return nil
	}

	return s.deleteMeFn(ctx, userID)
}

type stubReviewUsecase struct {
	stubResourceUsecase[entity.Review]

	createFn func(context.Context, *usecase.CreateReviewInput) (*entity.Review, error)
}

func (s *stubReviewUsecase) Create(ctx context.Context, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if s.createFn == nil {
		return &entity.Review{Review: input.Review}, nil
	}

	return s.createFn(ctx, input)
}

type stubAuthUsecase struct {
	signupFn         func(context.Context, *usecase.SignupInput) (*usecase.AuthOutput, error)
	loginFn          func(context.Context, *usecase.LoginInput) (*usecase.AuthOutput, error)
	authenticateFn   func(context.Context, string) (*entity.User, error)
	forgotPasswordFn func(context.Context, *usecase.ForgotPasswordInput, string) error
	resetPasswordFn  func(context.Context, string, *usecase.ResetPasswordInput) (*usecase.AuthOutput, error)
	updatePasswordFn func(context.Context, string, *usecase.UpdatePasswordInput) (*usecase.AuthOutput, error)
}

func (s *stubAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthUsecase) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput, resetURLBase string) error {
	return s.forgotPasswordFn(ctx, input, resetURLBase)
}

func (s *stubAuthUsecase) ResetPassword(ctx context.Context, rawToken string, input *usecase.ResetPasswordInput) (*usecase.AuthOutput, error) {
	return s.resetPasswordFn(ctx, rawToken, input)
}

func (s *stubAuthUsecase) UpdatePassword(ctx context.Context, userID string, input *usecase.UpdatePasswordInput) (*usecase.AuthOutput, error) {
	return s.updatePasswordFn(ctx, userID, input)
}

type stubTokenService struct{}

func (stubTokenService) Sign(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func (stubTokenService) Verify(_ string) (*service.SessionClaims, error) {
	return nil, nil
}

func (stubTokenService) TTL() time.Duration {
	return 90 * 24 * time.Hour
}
