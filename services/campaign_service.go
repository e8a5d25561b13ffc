package services

import (
	"regexp"
	"time"

	"signage-command-center/be/apperrors"
	"signage-command-center/be/authz"
	"signage-command-center/be/models"

	"gorm.io/gorm"
)

type CampaignService struct {
	db *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

type CreateCampaignInput struct {
	Name           string
	Description    string
	Status         models.CampaignStatus
	BudgetCents    int64
	StartDate      *time.Time
	EndDate        *time.Time
	TargetAudience string
	ClientID       *uint
}

type UpdateCampaignInput struct {
	Name           *string
	Description    *string
	Status         *models.CampaignStatus
	BudgetCents    *int64
	StartDate      *time.Time
	EndDate        *time.Time
	TargetAudience *string
	ClientID       *uint
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return apperrors.NewValidation("start_date must not be after end_date")
	}
	return nil
}

func (s *CampaignService) Create(actor *models.User, in CreateCampaignInput) (*models.Campaign, error) {
	decision, err := authorize(actor, authz.ResourceCampaign, authz.ActionCreate)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.CampaignDraft
	}
	if !status.Valid() {
		return nil, apperrors.NewValidation("invalid campaign status: %s", status)
	}
	if in.BudgetCents < 0 {
		return nil, apperrors.NewValidation("budget must not be negative")
	}
	if err := validateDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	clientID := in.ClientID
	// Clients may only create campaigns for themselves.
	if decision == authz.AllowOwn {
		id := actor.ID
		clientID = &id
	}

	campaign := models.Campaign{
		Name:           in.Name,
		Description:    in.Description,
		Status:         status,
		BudgetCents:    in.BudgetCents,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		TargetAudience: in.TargetAudience,
		CreatedBy:      actor.ID,
		ClientID:       clientID,
	}

	if err := s.db.Create(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &campaign, nil
}

// List scopes results by role: admins see everything, clients their own
// campaigns, viewers only active ones.
func (s *CampaignService) List(actor *models.User) ([]models.Campaign, error) {
	if _, err := authorize(actor, authz.ResourceCampaign, authz.ActionRead); err != nil {
		return nil, err
	}

	query := s.db.Order("created_at DESC")
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleClient:
		query = query.Where("client_id = ? OR created_by = ?", actor.ID, actor.ID)
	default:
		query = query.Where("status = ?", models.CampaignActive)
	}

	var campaigns []models.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (s *CampaignService) checkMutable(actor *models.User, campaign *models.Campaign, action authz.Action) error {
	decision, err := authorize(actor, authz.ResourceCampaign, action)
	if err != nil {
		return err
	}
	if decision == authz.AllowOwn && !campaign.OwnedBy(actor.ID) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *CampaignService) Update(actor *models.User, id uint, in UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutable(actor, campaign, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.NewValidation("invalid campaign status: %s", *in.Status)
		}
		if !campaign.Status.CanTransitionTo(*in.Status) {
			return nil, apperrors.NewValidation("cannot transition campaign from %s to %s", campaign.Status, *in.Status)
		}
		campaign.Status = *in.Status
	}
	if in.Name != nil {
		campaign.Name = *in.Name
	}
	if in.Description != nil {
		campaign.Description = *in.Description
	}
	if in.BudgetCents != nil {
		if *in.BudgetCents < 0 {
			return nil, apperrors.NewValidation("budget must not be negative")
		}
		campaign.BudgetCents = *in.BudgetCents
	}
	if in.StartDate != nil {
		campaign.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		campaign.EndDate = in.EndDate
	}
	if err := validateDates(campaign.StartDate, campaign.EndDate); err != nil {
		return nil, err
	}
	if in.TargetAudience != nil {
		campaign.TargetAudience = *in.TargetAudience
	}
	if in.ClientID != nil && actor.IsAdmin() {
		campaign.ClientID = in.ClientID
	}

	if err := s.db.Save(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Delete(actor *models.User, id uint) error {
	campaign, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.checkMutable(actor, campaign, authz.ActionDelete); err != nil {
		return err
	}
	return s.db.Delete(campaign).Error
}

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type CreateScheduleInput struct {
	CampaignID uint
	DayOfWeek  int
	StartTime  string
	EndTime    string
	IsActive   bool
}

func (s *CampaignService) AddSchedule(actor *models.User, in CreateScheduleInput) (*models.CampaignSchedule, error) {
	campaign, err := s.Get(in.CampaignID)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutable(actor, campaign, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return nil, apperrors.NewValidation("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	}
	if !timeOfDay.MatchString(in.StartTime) || !timeOfDay.MatchString(in.EndTime) {
		return nil, apperrors.NewValidation("times must use the HH:MM format")
	}

	schedule := models.CampaignSchedule{
		CampaignID: in.CampaignID,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		IsActive:   in.IsActive,
	}
	if err := s.db.Create(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListSchedules returns schedules, optionally restricted to those falling
// on the weekday of the given date. Clients only see schedules of their own
// campaigns.
func (s *CampaignService) ListSchedules(actor *models.User, date *time.Time) ([]models.CampaignSchedule, error) {
	if _, err := authorize(actor, authz.ResourceCampaign, authz.ActionRead); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.CampaignSchedule{}).Preload("Campaign")
	if date != nil {
		// time.Weekday counts 0=Sunday; stored schedules count 0=Monday.
		dow := (int(date.Weekday()) + 6) % 7
		query = query.Where("day_of_week = ?", dow)
	}
	if actor.Role == models.RoleClient {
		query = query.Joins("JOIN campaigns ON campaigns.id = campaign_schedules.campaign_id").
			Where("campaigns.client_id = ? OR campaigns.created_by = ?", actor.ID, actor.ID)
	}

	var schedules []models.CampaignSchedule
	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

type AttachMediaInput struct {
	CampaignID       uint
	Filename         string
	OriginalFilename string
	FilePath         string
	FileSize         int64
	FileType         string
	MimeType         string
}

func (s *CampaignService) AttachMedia(actor *models.User, in AttachMediaInput) (*models.CampaignMedia, error) {
	campaign, err := s.Get(in.CampaignID)
	if err != nil {
		return nil, err
	}
	if err := s.checkMutable(actor, campaign, authz.ActionUpdate); err != nil {
		return nil, err
	}

	uploaderID := actor.ID
	media := models.CampaignMedia{
		CampaignID:       in.CampaignID,
		Filename:         in.Filename,
		OriginalFilename: in.OriginalFilename,
		FilePath:         in.FilePath,
		FileSize:         in.FileSize,
		FileType:         in.FileType,
		MimeType:         in.MimeType,
		UploadedBy:       &uploaderID,
	}
	if err := s.db.Create(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (s *CampaignService) ListMedia(actor *models.User, campaignID uint) ([]models.CampaignMedia, error) {
	if _, err := authorize(actor, authz.ResourceCampaign, authz.ActionRead); err != nil {
		return nil, err
	}
	if _, err := s.Get(campaignID); err != nil {
		return nil, err
	}

	var media []models.CampaignMedia
	if err := s.db.Where("campaign_id = ?", campaignID).Order("uploaded_at DESC").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}
