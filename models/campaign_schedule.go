package models

import (
	"time"
)

// CampaignSchedule is a weekly recurring playback window for a campaign.
// DayOfWeek follows the source data convention: 0 = Monday .. 6 = Sunday.
type CampaignSchedule struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
	Campaign   *Campaign `json:"-" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	DayOfWeek  int       `json:"day_of_week" gorm:"not null"`
	StartTime  string    `json:"start_time" gorm:"size:5;not null"`
	EndTime    string    `json:"end_time" gorm:"size:5;not null"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (s *CampaignSchedule) DayName() string {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return "Unknown"
	}
	return dayNames[s.DayOfWeek]
}
