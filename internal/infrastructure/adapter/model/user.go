package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	UUID            string    `gorm:"uniqueIndex;not null;size:36"`
	Username        string    `gorm:"uniqueIndex;not null;size:64"`
	Email           string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash    string    `gorm:"not null;size:255"`
	DiscordID       string    `gorm:"size:32;index"`
	AvatarURL       string    `gorm:"size:512"`
	Role            string    `gorm:"not null;size:16;default:user"`
	IsBanned        bool      `gorm:"not null;default:false"`
	IsVerified      bool      `gorm:"not null;default:false"`
	LastSalaryClaim *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
