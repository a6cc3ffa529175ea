package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/handler"
)

// HealthChecker reports whether the database answers
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Options configures the engine around the handlers
type Options struct {
	BasePath       string
	AllowedOrigins []string
	ServiceName    string
	Verifier       AccessVerifier
	Health         HealthChecker
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware(opts.AllowedOrigins))

	r.GET("/health", healthHandler(deps.Logger, opts))

	authHandler := handler.NewAuthHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	bookmarkHandler := handler.NewBookmarkHandler(deps)
	searchHandler := handler.NewSearchHistoryHandler(deps)
	companyHandler := handler.NewCompanyHandler(deps)
	companyReviewHandler := handler.NewCompanyReviewHandler(deps)
	interviewReviewHandler := handler.NewInterviewReviewHandler(deps)
	interviewHandler := handler.NewInterviewHandler(deps)
	groupHandler := handler.NewApplicantGroupHandler(deps)

	requireAuth := AuthMiddleware(opts.Verifier)

	api := r.Group(opts.BasePath)
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/:id", jobHandler.Get)
			jobs.POST("", requireAuth, jobHandler.Create)
			jobs.PUT("/:id", requireAuth, jobHandler.Update)
			jobs.DELETE("/:id", requireAuth, jobHandler.Close)
		}

		applications := api.Group("/applications", requireAuth)
		{
			applications.POST("", applicationHandler.Apply)
			applications.GET("/me", applicationHandler.ListMine)
			applications.GET("/:id", applicationHandler.Get)
			applications.GET("/:id/history", applicationHandler.History)
			applications.DELETE("/:id", applicationHandler.Withdraw)
			applications.PATCH("/:id/status", applicationHandler.UpdateStatus)
			applications.PUT("/:id", applicationHandler.Update)
		}

		bookmarks := api.Group("/bookmarks", requireAuth)
		{
			bookmarks.POST("", bookmarkHandler.Toggle)
			bookmarks.GET("", bookmarkHandler.List)
			bookmarks.GET("/check/:targetType/:targetId", bookmarkHandler.Check)
		}

		searches := api.Group("/search-history", requireAuth)
		{
			searches.POST("", searchHandler.Save)
			searches.GET("", searchHandler.List)
			searches.DELETE("", searchHandler.Clear)
			searches.DELETE("/:id", searchHandler.Delete)
		}

		companies := api.Group("/companies", requireAuth)
		{
			companies.POST("", companyHandler.Create)
			companies.GET("", companyHandler.List)
			companies.GET("/:id", companyHandler.Get)
			companies.PUT("/:id", companyHandler.Update)
			companies.DELETE("/:id", companyHandler.Delete)
		}

		companyReviews := api.Group("/company-reviews", requireAuth)
		{
			companyReviews.POST("", companyReviewHandler.Create)
			companyReviews.GET("", companyReviewHandler.List)
			companyReviews.GET("/me", companyReviewHandler.ListMine)
			companyReviews.GET("/company/:companyId", companyReviewHandler.ListByCompany)
			companyReviews.PUT("/:id", companyReviewHandler.Update)
			companyReviews.DELETE("/:id", companyReviewHandler.Delete)
		}

		interviewReviews := api.Group("/interview-reviews", requireAuth)
		{
			interviewReviews.POST("", interviewReviewHandler.Create)
			interviewReviews.GET("", interviewReviewHandler.List)
			interviewReviews.GET("/company/:companyId", interviewReviewHandler.ListByCompany)
			interviewReviews.PUT("/:id", interviewReviewHandler.Update)
			interviewReviews.DELETE("/:id", interviewReviewHandler.Delete)
		}

		interviews := api.Group("/interviews", requireAuth)
		{
			interviews.POST("", interviewHandler.Schedule)
			interviews.GET("/me", interviewHandler.ListMine)
			interviews.GET("/company/:companyId", interviewHandler.ListByCompany)
			interviews.PATCH("/:id/status", interviewHandler.UpdateStatus)
			interviews.PUT("/:id/reschedule", interviewHandler.Reschedule)
		}

		groups := api.Group("/applicant-groups", requireAuth)
		{
			groups.POST("", groupHandler.Create)
			groups.GET("/company/:companyId", groupHandler.ListByCompany)
			groups.POST("/:groupId/applicants", groupHandler.AddApplicants)
			groups.GET("/:groupId/statistics", groupHandler.Statistics)
		}
	}

	return r
}

func healthHandler(logger *slog.Logger, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health.HealthCheck(c.Request.Context()); err != nil {
				logger.Error("Health check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": opts.ServiceName,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	}
}
