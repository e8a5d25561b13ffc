package handlers

import (
	"net/http"
	"time"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	campaigns *services.CampaignService
	users     *services.UserService
	activity  *services.ActivityService
}

func NewScheduleHandler(campaigns *services.CampaignService, users *services.UserService, activity *services.ActivityService) *ScheduleHandler {
	return &ScheduleHandler{
		campaigns: campaigns,
		users:     users,
		activity:  activity,
	}
}

type CreateScheduleRequest struct {
	CampaignID uint   `json:"campaign_id" binding:"required"`
	DayOfWeek  *int   `json:"day_of_week" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	IsActive   *bool  `json:"is_active"`
}

type scheduleResponse struct {
	ID             uint   `json:"id"`
	CampaignID     uint   `json:"campaign_id"`
	CampaignName   string `json:"campaign_name,omitempty"`
	CampaignStatus string `json:"campaign_status,omitempty"`
	DayOfWeek      int    `json:"day_of_week"`
	DayName        string `json:"day_name"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	IsActive       bool   `json:"is_active"`
}

// GetSchedules lists playback windows, optionally filtered to the weekday
// of ?date=YYYY-MM-DD.
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(c, apperrors.NewValidation("invalid date format, use YYYY-MM-DD"))
			return
		}
		date = &parsed
	}

	schedules, err := h.campaigns.ListSchedules(user, date)
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]scheduleResponse, 0, len(schedules))
	for i := range schedules {
		s := &schedules[i]
		resp := scheduleResponse{
			ID:         s.ID,
			CampaignID: s.CampaignID,
			DayOfWeek:  s.DayOfWeek,
			DayName:    s.DayName(),
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			IsActive:   s.IsActive,
		}
		if s.Campaign != nil {
			resp.CampaignName = s.Campaign.Name
			resp.CampaignStatus = string(s.Campaign.Status)
		}
		result = append(result, resp)
	}

	h.activity.Record(user.ID, "schedules_viewed", "", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"schedule": result, "isAdmin": user.IsAdmin()})
}

func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	schedule, err := h.campaigns.AddSchedule(user, services.CreateScheduleInput{
		CampaignID: req.CampaignID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsActive:   isActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "schedule_created", "Created schedule for campaign", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusCreated, schedule)
}
