package dto

import "time"

// CreateJobRequest represents the API request for a new job definition
type CreateJobRequest struct {
	JobName     string `json:"jobName" binding:"required,max=64"`
	Department  string `json:"department" binding:"max=64"`
	ClassLevel  int    `json:"classLevel" binding:"min=0"`
	DailyAmount string `json:"dailyAmount" binding:"required"`
}

// JobResponse represents a job definition in API responses
type JobResponse struct {
	ID          uint64 `json:"id"`
	JobName     string `json:"jobName"`
	Department  string `json:"department"`
	ClassLevel  int    `json:"classLevel"`
	DailyAmount string `json:"dailyAmount"`
}

// JobSummaryResponse reports a user's jobs and salary claim window
type JobSummaryResponse struct {
	Jobs        []JobResponse `json:"jobs"`
	BestJob     *JobResponse  `json:"bestJob,omitempty"`
	CanClaim    bool          `json:"canClaim"`
	NextClaimAt *time.Time    `json:"nextClaimAt,omitempty"`
}

// BanRequest represents the API request for banning or unbanning a user
type BanRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}
