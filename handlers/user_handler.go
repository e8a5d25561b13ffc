package handlers

import (
	"encoding/json"
	"net/http"

	"signage-command-center/be/models"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users    *services.UserService
	activity *services.ActivityService
}

func NewUserHandler(users *services.UserService, activity *services.ActivityService) *UserHandler {
	return &UserHandler{users: users, activity: activity}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	users, err := h.users.List(user)
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}

	h.activity.Record(user.ID, "users_viewed", "", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, result)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateRole(actor, id, models.Role(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(actor.ID, "user_role_updated", "User "+user.Username+" role set to "+string(user.Role), c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"success": true, "user": toUserResponse(user)})
}

func (h *UserHandler) ToggleStatus(c *gin.Context) {
	actor, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := h.users.ToggleActive(actor, id)
	if err != nil {
		writeError(c, err)
		return
	}

	action := "deactivated"
	if user.IsActive {
		action = "activated"
	}
	h.activity.Record(actor.ID, "user_status_updated", "User "+user.Username+" "+action, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"success": true, "user": toUserResponse(user), "action": action})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type UpdateProfileRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.users.UpdateProfile(user, services.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "profile_updated", "Profile updated for user "+updated.Username, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"success": true, "user": toUserResponse(updated)})
}

// UpdatePreferences accepts an arbitrary JSON object and stores it on the
// account.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var prefs map[string]interface{}
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
		return
	}
	if err := h.users.UpdatePreferences(user, string(raw)); err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "preferences_updated", "Preferences updated for user "+user.Username, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}

func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var settings map[string]interface{}
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}
	if err := h.users.UpdateNotificationSettings(user, string(raw)); err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "notification_settings_updated", "Notification settings updated for user "+user.Username, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match"})
		return
	}

	if err := h.users.ChangePassword(user, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "password_changed", "Password changed for user "+user.Username, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}
