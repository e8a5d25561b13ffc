package models

import (
	"time"
)

type CampaignMedia struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CampaignID       uint      `json:"campaign_id" gorm:"not null;index"`
	Campaign         *Campaign `json:"-" gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	Filename         string    `json:"filename" gorm:"size:255;not null"`
	OriginalFilename string    `json:"original_filename" gorm:"size:255;not null"`
	FilePath         string    `json:"-" gorm:"size:500;not null"`
	FileSize         int64     `json:"file_size"`
	FileType         string    `json:"file_type" gorm:"size:50"`
	MimeType         string    `json:"mime_type" gorm:"size:100"`
	UploadedBy       *uint     `json:"uploaded_by,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}
