package handlers

import (
	"net/http"
	"strconv"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/authz"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activity *services.ActivityService
	users    *services.UserService
}

func NewActivityHandler(activity *services.ActivityService, users *services.UserService) *ActivityHandler {
	return &ActivityHandler{activity: activity, users: users}
}

// GetActivity returns the newest audit entries, admin only.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	if !authz.Can(user.Role, authz.ResourceActivity, authz.ActionRead) {
		writeError(c, apperrors.ErrForbidden)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(c, apperrors.NewValidation("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.activity.Recent(limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
