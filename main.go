package main

import (
	"log"
	"os"

	"signage-command-center/be/config"
	"signage-command-center/be/database"
	"signage-command-center/be/handlers"
	"signage-command-center/be/middleware"
	"signage-command-center/be/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize services
	hub := services.NewDeviceEventHub()
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db)
	locationService := services.NewLocationService(db)
	campaignService := services.NewCampaignService(db)
	deviceService := services.NewDeviceService(db, hub)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(userService, activityService, cfg.JWT)
	dashboardHandler := handlers.NewDashboardHandler(db, userService, activityService)
	locationHandler := handlers.NewLocationHandler(locationService, userService, activityService)
	campaignHandler := handlers.NewCampaignHandler(campaignService, userService, activityService, cfg.Upload.Dir)
	scheduleHandler := handlers.NewScheduleHandler(campaignService, userService, activityService)
	deviceHandler := handlers.NewDeviceHandler(deviceService, userService, activityService, hub)
	userHandler := handlers.NewUserHandler(userService, activityService)
	activityHandler := handlers.NewActivityHandler(activityService, userService)

	// Setup router
	router := setupRouter(cfg, healthHandler, authHandler, dashboardHandler,
		locationHandler, campaignHandler, scheduleHandler, deviceHandler,
		userHandler, activityHandler)

	// Start server
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	locationHandler *handlers.LocationHandler,
	campaignHandler *handlers.CampaignHandler,
	scheduleHandler *handlers.ScheduleHandler,
	deviceHandler *handlers.DeviceHandler,
	userHandler *handlers.UserHandler,
	activityHandler *handlers.ActivityHandler,
) *gin.Engine {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS configuration
	allowed := make(map[string]bool, len(cfg.CORS.AllowedOrigins))
	for _, origin := range cfg.CORS.AllowedOrigins {
		allowed[origin] = true
	}
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// Allow requests with no origin (like curl or device agents)
			if origin == "" {
				return true
			}
			return allowed[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Public routes
	router.GET("/health", healthHandler.Health)
	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		protected.GET("/", dashboardHandler.GetDashboard)
		protected.GET("/logout", authHandler.Logout)

		api := protected.Group("/api")
		{
			api.GET("/auth/me", authHandler.GetMe)

			locations := api.Group("/locations")
			{
				locations.GET("", locationHandler.GetLocations)
				locations.POST("", locationHandler.CreateLocation)
				locations.GET("/:id", locationHandler.GetLocation)
				locations.PUT("/:id", locationHandler.UpdateLocation)
				locations.DELETE("/:id", locationHandler.DeleteLocation)
			}

			campaigns := api.Group("/campaigns")
			{
				campaigns.GET("", campaignHandler.GetCampaigns)
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("/:id", campaignHandler.GetCampaign)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
				campaigns.GET("/:id/media", campaignHandler.GetMedia)
				campaigns.POST("/:id/media", campaignHandler.UploadMedia)
			}

			api.GET("/schedule", scheduleHandler.GetSchedules)
			api.POST("/schedule", scheduleHandler.CreateSchedule)

			devices := api.Group("/devices")
			{
				devices.GET("", deviceHandler.GetDevices)
				devices.POST("", deviceHandler.CreateDevice)
				devices.GET("/ws", deviceHandler.StreamEvents)
				devices.GET("/:id", deviceHandler.GetDevice)
				devices.PUT("/:id", deviceHandler.UpdateDevice)
				devices.DELETE("/:id", deviceHandler.DeleteDevice)
				devices.PUT("/:id/status", deviceHandler.UpdateDeviceStatus)
				devices.POST("/:id/heartbeat", deviceHandler.Heartbeat)
			}

			users := api.Group("/users")
			{
				users.GET("", userHandler.GetUsers)
				users.PUT("/:id/role", userHandler.UpdateRole)
				users.POST("/:id/toggle-status", userHandler.ToggleStatus)
			}

			api.GET("/activity", activityHandler.GetActivity)

			api.GET("/profile", userHandler.GetProfile)
			api.PUT("/profile", userHandler.UpdateProfile)
			api.PUT("/preferences", userHandler.UpdatePreferences)
			api.PUT("/notifications/settings", userHandler.UpdateNotificationSettings)
			api.POST("/password", userHandler.ChangePassword)
		}
	}

	return router
}
