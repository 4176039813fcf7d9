package usecase

import (
	"context"
	"time"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// CreateJobRequest carries the fields of a new job definition.
type CreateJobRequest struct {
	JobName     string
	Department  string
	ClassLevel  int
	DailyAmount string
}

// JobSummary reports a user's assigned jobs and salary claim window.
type JobSummary struct {
	Jobs        []*entity.Job
	BestJob     *entity.Job
	CanClaim    bool
	NextClaimAt time.Time
}

// JobUseCase manages job definitions and assignments. Role verification
// for the administrative operations happens at the request boundary.
type JobUseCase interface {
	// CreateJob inserts a new job definition. Admin only.
	CreateJob(ctx context.Context, req CreateJobRequest) (*entity.Job, error)

	// Assign links a job to a user. Admin only.
	Assign(ctx context.Context, userID, jobID uint64) error

	// Unassign removes a job from a user. Admin only.
	Unassign(ctx context.Context, userID, jobID uint64) error

	// Summary returns the actor's jobs and salary cooldown state
	Summary(ctx context.Context, actorID uint64) (*JobSummary, error)
}
