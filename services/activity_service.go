package services

import (
	"log"

	"signage-command-center/be/models"

	"gorm.io/gorm"
)

// ActivityService appends rows to the audit trail. A failed write is logged
// and swallowed so auditing never fails the request it describes.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) Record(userID uint, action, details, ipAddress, userAgent string) {
	entry := models.ActivityLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log activity %q for user %d: %v", action, userID, err)
	}
}

// Recent returns the newest entries, up to limit.
func (s *ActivityService) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := s.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
