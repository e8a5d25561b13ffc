package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/models"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locations *services.LocationService
	users     *services.UserService
	activity  *services.ActivityService
}

func NewLocationHandler(locations *services.LocationService, users *services.UserService, activity *services.ActivityService) *LocationHandler {
	return &LocationHandler{
		locations: locations,
		users:     users,
		activity:  activity,
	}
}

type CreateLocationRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Status      string   `json:"status"`
}

type UpdateLocationRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Status      *string  `json:"status"`
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	locations, err := h.locations.List()
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "locations_viewed", "", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	location, err := h.locations.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "location_viewed", "Viewed location: "+location.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.locations.Create(user, services.CreateLocationInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.LocationStatus(req.Status),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "location_created", "Created location: "+location.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateLocationInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.Status != nil {
		status := models.LocationStatus(*req.Status)
		in.Status = &status
	}

	location, err := h.locations.Update(user, id, in)
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "location_updated", "Updated location: "+location.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	location, err := h.locations.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.locations.Delete(user, id); err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "location_deleted", "Deleted location: "+location.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Location %q deleted successfully", location.Name)})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewValidation("invalid id: %s", c.Param("id"))
	}
	return uint(id), nil
}
