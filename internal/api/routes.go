package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles what the routes need.
type Services struct {
	Auth       service.AuthService
	Workout    service.WorkoutService
	Progress   service.ProgressService
	Completion service.CompletionService
	Rewards    service.RewardsService
}

func SetupRoutes(router *gin.Engine, services Services, metricsManager *metrics.Manager, metricsHandler http.Handler) {
	authHandler := NewAuthHandler(services.Auth)
	workoutHandler := NewWorkoutHandler(services.Workout)
	progressHandler := NewProgressHandler(services.Workout, services.Progress, services.Completion, metricsManager)
	rewardsHandler := NewRewardsHandler(services.Rewards, metricsManager)

	authMiddleware := AuthMiddleware(services.Auth.GetJWTSecret(), services.Auth.Namespace)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/questionnaire", workoutHandler.Questionnaire)

		workoutsGroup := protected.Group("/workouts")
		{
			workoutsGroup.GET("/options", workoutHandler.Options)
			workoutsGroup.POST("/preview", workoutHandler.Preview)
			workoutsGroup.POST("", workoutHandler.Create)
		}

		// the active workout of the caller
		workoutGroup := protected.Group("/workout")
		{
			workoutGroup.GET("", workoutHandler.Current)
			workoutGroup.DELETE("", workoutHandler.Delete)
			workoutGroup.GET("/progress", progressHandler.Summary)
			workoutGroup.GET("/progress/export", progressHandler.Export)
			workoutGroup.POST("/complete", progressHandler.Complete)
		}

		protected.GET("/points", rewardsHandler.Points)
		protected.GET("/rewards", rewardsHandler.Products)
		protected.POST("/rewards/:productId/redeem", rewardsHandler.Redeem)
	}
}
