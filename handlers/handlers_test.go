package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"signage-command-center/be/config"
	"signage-command-center/be/database"
	"signage-command-center/be/middleware"
	"signage-command-center/be/models"
	"signage-command-center/be/services"
	"signage-command-center/be/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testJWT = config.JWTConfig{Secret: "test-secret", Expiry: "1h"}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	hub    *services.DeviceEventHub
}

// newTestServer wires the full route table against an in-memory database,
// mirroring the router built in main.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	hub := services.NewDeviceEventHub()
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db)
	locationService := services.NewLocationService(db)
	campaignService := services.NewCampaignService(db)
	deviceService := services.NewDeviceService(db, hub)

	healthHandler := NewHealthHandler(db)
	authHandler := NewAuthHandler(userService, activityService, testJWT)
	dashboardHandler := NewDashboardHandler(db, userService, activityService)
	locationHandler := NewLocationHandler(locationService, userService, activityService)
	campaignHandler := NewCampaignHandler(campaignService, userService, activityService, t.TempDir())
	scheduleHandler := NewScheduleHandler(campaignService, userService, activityService)
	deviceHandler := NewDeviceHandler(deviceService, userService, activityService, hub)
	userHandler := NewUserHandler(userService, activityService)
	activityHandler := NewActivityHandler(activityService, userService)

	router := gin.New()
	router.GET("/health", healthHandler.Health)
	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(testJWT.Secret))
	{
		protected.GET("/", dashboardHandler.GetDashboard)
		protected.GET("/logout", authHandler.Logout)

		api := protected.Group("/api")
		api.GET("/auth/me", authHandler.GetMe)

		api.GET("/locations", locationHandler.GetLocations)
		api.POST("/locations", locationHandler.CreateLocation)
		api.GET("/locations/:id", locationHandler.GetLocation)
		api.PUT("/locations/:id", locationHandler.UpdateLocation)
		api.DELETE("/locations/:id", locationHandler.DeleteLocation)

		api.GET("/campaigns", campaignHandler.GetCampaigns)
		api.POST("/campaigns", campaignHandler.CreateCampaign)
		api.GET("/campaigns/:id", campaignHandler.GetCampaign)
		api.PUT("/campaigns/:id", campaignHandler.UpdateCampaign)
		api.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)
		api.GET("/campaigns/:id/media", campaignHandler.GetMedia)
		api.POST("/campaigns/:id/media", campaignHandler.UploadMedia)

		api.GET("/schedule", scheduleHandler.GetSchedules)
		api.POST("/schedule", scheduleHandler.CreateSchedule)

		api.GET("/devices", deviceHandler.GetDevices)
		api.POST("/devices", deviceHandler.CreateDevice)
		api.GET("/devices/ws", deviceHandler.StreamEvents)
		api.GET("/devices/:id", deviceHandler.GetDevice)
		api.PUT("/devices/:id", deviceHandler.UpdateDevice)
		api.DELETE("/devices/:id", deviceHandler.DeleteDevice)
		api.PUT("/devices/:id/status", deviceHandler.UpdateDeviceStatus)
		api.POST("/devices/:id/heartbeat", deviceHandler.Heartbeat)

		api.GET("/users", userHandler.GetUsers)
		api.PUT("/users/:id/role", userHandler.UpdateRole)
		api.POST("/users/:id/toggle-status", userHandler.ToggleStatus)

		api.GET("/activity", activityHandler.GetActivity)

		api.GET("/profile", userHandler.GetProfile)
		api.PUT("/profile", userHandler.UpdateProfile)
		api.PUT("/preferences", userHandler.UpdatePreferences)
		api.PUT("/notifications/settings", userHandler.UpdateNotificationSettings)
		api.POST("/password", userHandler.ChangePassword)
	}

	return &testServer{db: db, router: router, hub: hub}
}

func (ts *testServer) createUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, ts.db.Create(user).Error)
	return user
}

func (ts *testServer) login(t *testing.T, username string) string {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
