// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"wanderly/internal/delivery/http/middleware"
	"wanderly/internal/delivery/http/router/handler"
	"wanderly/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	TourHandler    *handler.TourHandler
	UserHandler    *handler.UserHandler
	AuthHandler    *handler.AuthHandler
	ReviewHandler  *handler.ReviewHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	tours  *handler.TourHandler
	users  *handler.UserHandler
	auth   *handler.AuthHandler
	review *handler.ReviewHandler
	guard  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		tours:  params.TourHandler,
		users:  params.UserHandler,
		auth:   params.AuthHandler,
		review: params.ReviewHandler,
		guard:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")

	// Tour routes
	tours := api.Group("/tours")
	{
		tours.GET("", r.tours.GetAll)
		tours.GET("/top-5-cheap", r.tours.GetAll, handler.AliasTopTours)
		tours.GET("/tour-stats", r.tours.Stats)
		tours.GET("/:id", r.tours.GetOne)

		tours.POST("", r.tours.CreateTour,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin, entity.RoleLeadGuide))
		tours.PATCH("/:id", r.tours.UpdateOne,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin, entity.RoleLeadGuide))
		tours.DELETE("/:id", r.tours.DeleteOne,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin, entity.RoleLeadGuide))

		// Reviews nested under their tour
		tours.GET("/:tourId/reviews", r.review.ListReviews)
		tours.POST("/:tourId/reviews", r.review.CreateReview,
			r.guard.Protect, r.guard.RequireRole(entity.RoleUser))
	}

	// Auth and user routes
	users := api.Group("/users")
	{
		users.POST("/signup", r.auth.Signup)
		users.POST("/login", r.auth.Login)
		users.GET("/logout", r.auth.Logout)
		users.POST("/forgotPassword", r.auth.ForgotPassword)
		users.PATCH("/resetPassword/:token", r.auth.ResetPassword)

		// Everything below requires a session
		users.PATCH("/updateMyPassword", r.auth.UpdatePassword, r.guard.Protect)
		users.GET("/me", r.users.GetMe, r.guard.Protect)
		users.PATCH("/updateMe", r.users.UpdateMe, r.guard.Protect)
		users.DELETE("/deleteMe", r.users.DeleteMe, r.guard.Protect)

		// Administrative account management
		users.GET("", r.users.GetAll,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin))
		users.POST("", r.users.CreateOne,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin))
		users.GET("/:id", r.users.GetOne,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin))
		users.PATCH("/:id", r.users.UpdateOne,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin))
		users.DELETE("/:id", r.users.DeleteOne,
			r.guard.Protect, r.guard.RequireRole(entity.RoleAdmin))
	}

	// Flat review routes
	reviews := api.Group("/reviews", r.guard.Protect)
	{
		reviews.GET("", r.review.ListReviews)
		reviews.POST("", r.review.CreateReview, r.guard.RequireRole(entity.RoleUser))
		reviews.GET("/:id", r.review.GetOne)
		reviews.PATCH("/:id", r.review.UpdateOne,
			r.guard.RequireRole(entity.RoleUser, entity.RoleAdmin))
		reviews.DELETE("/:id", r.review.DeleteOne,
			r.guard.RequireRole(entity.RoleUser, entity.RoleAdmin))
	}
}
