package models

import (
	"time"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the campaign lifecycle:
// draft -> active -> (paused <-> active) -> completed. Completed is terminal.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case CampaignDraft:
		return next == CampaignActive
	case CampaignActive:
		return next == CampaignPaused || next == CampaignCompleted
	case CampaignPaused:
		return next == CampaignActive || next == CampaignCompleted
	}
	return false
}

type Campaign struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"size:100;not null;index"`
	Description    string         `json:"description" gorm:"type:text"`
	Status         CampaignStatus `json:"status" gorm:"size:20;not null;default:draft"`
	BudgetCents    int64          `json:"budget_cents" gorm:"not null;default:0"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	TargetAudience string         `json:"target_audience" gorm:"type:text"`
	CreatedBy      uint           `json:"created_by" gorm:"not null;index"`
	ClientID       *uint          `json:"client_id,omitempty" gorm:"index"`
	Creator        *User          `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Client         *User          `json:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// OwnedBy reports whether the user created the campaign or is its
// assigned client.
func (c *Campaign) OwnedBy(userID uint) bool {
	if c.CreatedBy == userID {
		return true
	}
	return c.ClientID != nil && *c.ClientID == userID
}
