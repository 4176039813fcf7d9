package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job represents the database model for salaried positions
type Job struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	JobName     string          `gorm:"uniqueIndex;not null;size:128"`
	Department  string          `gorm:"size:128"`
	ClassLevel  int             `gorm:"not null;default:0"`
	DailyAmount decimal.Decimal `gorm:"type:numeric(20,3);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName specifies the table name for Job
func (Job) TableName() string {
	return "jobs"
}

// UserJob links a user to a job they hold
type UserJob struct {
	UserID    uint64    `gorm:"primaryKey"`
	JobID     uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
	Job  Job  `gorm:"foreignKey:JobID;references:ID"`
}

// TableName specifies the table name for UserJob
func (UserJob) TableName() string {
	return "user_jobs"
}
