package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gym-app-server/internal/config"
	"gym-app-server/internal/handlers"
	"gym-app-server/internal/middleware"
	"gym-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	timeSlotHandler := handlers.NewTimeSlotHandler(db)
	scheduleHandler := handlers.NewTrainerScheduleHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg)
	ratingHandler := handlers.NewRatingHandler(db)
	workoutResultHandler := handlers.NewWorkoutResultHandler(db)

	backOffice := middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User directory and admin user management
		userRoutes := private.Group("/users")
		{
			// Trainer directory - accessible by all authenticated users
			userRoutes.GET("/trainers", userHandler.GetTrainers)
			userRoutes.POST("/trainers", backOffice, userHandler.CreateTrainer)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Time slot registry
		timeSlotRoutes := private.Group("/training-time-slots")
		{
			timeSlotRoutes.GET("", timeSlotHandler.GetTimeSlots)
			timeSlotRoutes.POST("", backOffice, timeSlotHandler.CreateTimeSlot)
			timeSlotRoutes.PATCH("/:id/active", backOffice, timeSlotHandler.SetTimeSlotActive)
		}

		// Trainer weekly schedules and availability
		scheduleRoutes := private.Group("/trainer-schedules")
		{
			scheduleRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleTrainer), scheduleHandler.CreateSchedule)
			scheduleRoutes.GET("/:trainerId/weekly", scheduleHandler.GetWeeklySchedule)
			scheduleRoutes.GET("/:trainerId/check-availability", scheduleHandler.CheckAvailability)
			scheduleRoutes.POST("/:trainerId/reset", backOffice, scheduleHandler.ResetSchedule)
		}

		// Appointments
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", backOffice, appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/user/me", appointmentHandler.GetMyMemberAppointments)
			appointmentRoutes.GET("/trainer/me", appointmentHandler.GetMyTrainerAppointments)
			appointmentRoutes.GET("/user/:userId/trainer/:trainerId", appointmentHandler.GetAppointmentsForUserAndTrainer)
			appointmentRoutes.GET("/trainer/:trainerId/stats",
				middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleTrainer),
				appointmentHandler.GetTrainerStats)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)       // Authorization inside handler
			appointmentRoutes.PATCH("/:id", appointmentHandler.UpdateAppointment)      // Authorization inside handler
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.DELETE("/:id", backOffice, appointmentHandler.DeleteAppointment)
		}

		// Post-session records
		ratingRoutes := private.Group("/ratings")
		{
			ratingRoutes.POST("", ratingHandler.CreateRating)
			ratingRoutes.GET("/appointment/:appointmentId", ratingHandler.GetRating)
			ratingRoutes.PATCH("/appointment/:appointmentId", ratingHandler.UpdateRating)
		}

		workoutResultRoutes := private.Group("/workout-results")
		{
			workoutResultRoutes.POST("", workoutResultHandler.CreateWorkoutResult)
			workoutResultRoutes.GET("/appointment/:appointmentId", workoutResultHandler.GetWorkoutResult)
			workoutResultRoutes.PATCH("/appointment/:appointmentId", workoutResultHandler.UpdateWorkoutResult)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
