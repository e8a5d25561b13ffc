package models

import (
	"time"
)

// Role governs what a user may do. Unknown values deny everything.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email                string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash         string    `json:"-" gorm:"size:255;not null"`
	Role                 Role      `json:"role" gorm:"size:20;not null;default:viewer"`
	FullName             string    `json:"full_name" gorm:"size:200"`
	Preferences          string    `json:"-" gorm:"type:text"`
	NotificationSettings string    `json:"-" gorm:"type:text"`
	IsActive             bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt            time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
