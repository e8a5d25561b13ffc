package handlers

import (
	"net/http"

	"signage-command-center/be/models"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db       *gorm.DB
	users    *services.UserService
	activity *services.ActivityService
}

func NewDashboardHandler(db *gorm.DB, users *services.UserService, activity *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{db: db, users: users, activity: activity}
}

// GetDashboard returns role-shaped summary stats.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	h.activity.Record(user.ID, "dashboard_accessed", "", c.ClientIP(), c.Request.UserAgent())

	stats := gin.H{
		"username":  user.Username,
		"user_role": string(user.Role),
	}

	count := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		q := h.db.Model(model)
		if query != "" {
			q = q.Where(query, args...)
		}
		q.Count(&n)
		return n
	}

	switch user.Role {
	case models.RoleAdmin:
		stats["total_locations"] = count(&models.Location{}, "")
		stats["total_users"] = count(&models.User{}, "")
		stats["total_campaigns"] = count(&models.Campaign{}, "")
		stats["total_devices"] = count(&models.Device{}, "")
		stats["active_campaigns"] = count(&models.Campaign{}, "status = ?", models.CampaignActive)
		stats["online_devices"] = count(&models.Device{}, "status = ?", models.DeviceOnline)
		stats["offline_devices"] = count(&models.Device{}, "status = ?", models.DeviceOffline)
		if recent, err := h.activity.Recent(10); err == nil {
			stats["recent_activities"] = recent
		}
	case models.RoleClient:
		stats["total_campaigns"] = count(&models.Campaign{}, "client_id = ? OR created_by = ?", user.ID, user.ID)
		stats["active_campaigns"] = count(&models.Campaign{}, "(client_id = ? OR created_by = ?) AND status = ?", user.ID, user.ID, models.CampaignActive)
		var totalBudget int64
		h.db.Model(&models.Campaign{}).
			Where("client_id = ? OR created_by = ?", user.ID, user.ID).
			Select("COALESCE(SUM(budget_cents), 0)").Scan(&totalBudget)
		stats["total_budget_cents"] = totalBudget
		stats["total_locations"] = count(&models.Location{}, "")
		stats["total_devices"] = count(&models.Device{}, "")
		stats["online_devices"] = count(&models.Device{}, "status = ?", models.DeviceOnline)
	default:
		stats["total_locations"] = count(&models.Location{}, "")
		stats["total_devices"] = count(&models.Device{}, "")
		stats["online_devices"] = count(&models.Device{}, "status = ?", models.DeviceOnline)
		stats["offline_devices"] = count(&models.Device{}, "status = ?", models.DeviceOffline)
	}

	c.JSON(http.StatusOK, stats)
}
