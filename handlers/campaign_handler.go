package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/models"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	campaigns *services.CampaignService
	users     *services.UserService
	activity  *services.ActivityService
	uploadDir string
}

func NewCampaignHandler(campaigns *services.CampaignService, users *services.UserService, activity *services.ActivityService, uploadDir string) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaigns,
		users:     users,
		activity:  activity,
		uploadDir: uploadDir,
	}
}

type CreateCampaignRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	BudgetCents    int64   `json:"budget_cents"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	TargetAudience string  `json:"target_audience"`
	ClientID       *uint   `json:"client_id"`
}

type UpdateCampaignRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Status         *string `json:"status"`
	BudgetCents    *int64  `json:"budget_cents"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	TargetAudience *string `json:"target_audience"`
	ClientID       *uint   `json:"client_id"`
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, apperrors.NewValidation("invalid date %q, expected RFC3339", *value)
	}
	return &t, nil
}

func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	campaigns, err := h.campaigns.List(user)
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "campaigns_viewed", "", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, campaigns)
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	campaign, err := h.campaigns.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "campaign_viewed", "Viewed campaign: "+campaign.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}

	campaign, err := h.campaigns.Create(user, services.CreateCampaignInput{
		Name:           req.Name,
		Description:    req.Description,
		Status:         models.CampaignStatus(req.Status),
		BudgetCents:    req.BudgetCents,
		StartDate:      startDate,
		EndDate:        endDate,
		TargetAudience: req.TargetAudience,
		ClientID:       req.ClientID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "campaign_created", "Created campaign: "+campaign.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.UpdateCampaignInput{
		Name:           req.Name,
		Description:    req.Description,
		BudgetCents:    req.BudgetCents,
		TargetAudience: req.TargetAudience,
		ClientID:       req.ClientID,
	}
	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		in.Status = &status
	}
	if in.StartDate, err = parseDate(req.StartDate); err != nil {
		writeError(c, err)
		return
	}
	if in.EndDate, err = parseDate(req.EndDate); err != nil {
		writeError(c, err)
		return
	}

	campaign, err := h.campaigns.Update(user, id, in)
	if err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "campaign_updated", "Updated campaign: "+campaign.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	campaign, err := h.campaigns.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.campaigns.Delete(user, id); err != nil {
		writeError(c, err)
		return
	}

	h.activity.Record(user.ID, "campaign_deleted", "Deleted campaign: "+campaign.Name, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Campaign %q deleted successfully", campaign.Name)})
}

var allowedMediaExtensions = map[string]string{
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".gif":  "image",
	".mp4":  "video",
	".avi":  "video",
	".mov":  "video",
	".webm": "video",
}

// UploadMedia stores one or more files from a multipart form and records a
// media row per file.
func (h *CampaignHandler) UploadMedia(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	dir := filepath.Join(h.uploadDir, fmt.Sprintf("%d", user.ID), time.Now().UTC().Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	var uploaded []models.CampaignMedia
	for _, files := range form.File {
		for _, file := range files {
			ext := strings.ToLower(filepath.Ext(file.Filename))
			fileType, allowed := allowedMediaExtensions[ext]
			if !allowed {
				writeError(c, apperrors.NewValidation("file type %s is not allowed", ext))
				return
			}

			storedName := uuid.New().String() + "_" + filepath.Base(file.Filename)
			dest := filepath.Join(dir, storedName)
			if err := c.SaveUploadedFile(file, dest); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
				return
			}

			media, err := h.campaigns.AttachMedia(user, services.AttachMediaInput{
				CampaignID:       id,
				Filename:         storedName,
				OriginalFilename: filepath.Base(file.Filename),
				FilePath:         dest,
				FileSize:         file.Size,
				FileType:         fileType,
				MimeType:         file.Header.Get("Content-Type"),
			})
			if err != nil {
				writeError(c, err)
				return
			}
			uploaded = append(uploaded, *media)
		}
	}

	h.activity.Record(user.ID, "campaign_media_uploaded", fmt.Sprintf("Uploaded %d file(s) to campaign %d", len(uploaded), id), c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusCreated, uploaded)
}

func (h *CampaignHandler) GetMedia(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	media, err := h.campaigns.ListMedia(user, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}
