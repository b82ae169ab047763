package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/swipehire/backend/internal/delivery/http/handler"
	"github.com/swipehire/backend/internal/delivery/http/middleware"
	"github.com/swipehire/backend/internal/usecase/job"
)

type Router struct {
	authHandler     *handler.AuthHandler
	accountHandler  *handler.AccountHandler
	jobHandler      *handler.JobHandler
	feedHandler     *handler.FeedHandler
	swipeHandler    *handler.SwipeHandler
	matchHandler    *handler.MatchHandler
	checkoutHandler *handler.CheckoutHandler
	chatHandler     *handler.ChatHandler
	authMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	jobHandler *handler.JobHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	checkoutHandler *handler.CheckoutHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:     authHandler,
		accountHandler:  accountHandler,
		jobHandler:      jobHandler,
		feedHandler:     feedHandler,
		swipeHandler:    swipeHandler,
		matchHandler:    matchHandler,
		checkoutHandler: checkoutHandler,
		chatHandler:     chatHandler,
		authMiddleware:  authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Provider webhooks are signature-verified, never session-authenticated
	router.POST("/webhooks/stripe", r.checkoutHandler.Webhook)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.POST("/logout-all", r.authMiddleware.RequireAuth(), r.authHandler.LogoutAll)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Account routes
			account := protected.Group("/account")
			{
				account.PUT("/me", r.accountHandler.UpdateMe)
				account.GET("/me/payments", r.matchHandler.PaymentHistory)
				account.GET("/:account_id", r.accountHandler.Get)
			}

			// Job posting routes
			jobs := protected.Group("/jobs")
			{
				jobs.POST("", r.jobHandler.Create)
				jobs.GET("/mine", r.jobHandler.ListMine)
				jobs.GET("/:job_id", r.jobHandler.Get)
				jobs.PUT("/:job_id", r.jobHandler.Update)
				jobs.PATCH("/:job_id/active", r.jobHandler.SetActive)
			}

			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/jobs", r.feedHandler.NextJobs)
				feed.GET("/candidates", r.feedHandler.NextCandidates)
			}

			// Swipe routes
			swipe := protected.Group("/swipe")
			{
				swipe.POST("", r.swipeHandler.CreateSwipe)
				swipe.GET("/likes-received", r.swipeHandler.GetLikesReceived)
			}

			// Match, unlock and chat routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.List)
				matches.GET("/:match_id", r.matchHandler.Get)
				matches.GET("/:match_id/payments", r.matchHandler.Payments)
				matches.POST("/:match_id/unlock", r.checkoutHandler.Unlock)
				matches.POST("/:match_id/unlock/charge", r.checkoutHandler.ChargeCard)
				matches.POST("/:match_id/messages", r.chatHandler.Send)
				matches.GET("/:match_id/messages", r.chatHandler.History)
			}
		}
	}

	return router
}

func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(flexWindowValidation, job.CreateJobRequest{})
}

// flexWindowValidation rejects flex postings with a missing or inverted
// availability window before the request reaches the use case layer.
func flexWindowValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(job.CreateJobRequest)
	if !req.IsFlex {
		return
	}
	if req.FlexStartAt == nil || req.FlexEndAt == nil {
		sl.ReportError(req.FlexStartAt, "FlexStartAt", "flex_start_at", "required_for_flex", "")
		return
	}
	if !req.FlexEndAt.After(*req.FlexStartAt) {
		sl.ReportError(req.FlexEndAt, "FlexEndAt", "flex_end_at", "flex_window_order", "")
	}
}
