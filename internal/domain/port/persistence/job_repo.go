package persistence

import (
	"context"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// JobRepository defines persistence operations for jobs and assignments.
type JobRepository interface {
	// GetHighestPaidForUser returns the user's best-paying assigned job,
	// ordered by daily amount descending with job id ascending as the
	// deterministic tie-break
	//
	// Possible errors:
	// - ErrNoJob: if the user holds no job
	GetHighestPaidForUser(ctx context.Context, userID uint64) (*entity.Job, error)

	// ListForUser returns all jobs assigned to the user
	ListForUser(ctx context.Context, userID uint64) ([]*entity.Job, error)

	// Create inserts a new job definition
	Create(ctx context.Context, job *entity.Job) error

	// Assign links a job to a user
	//
	// Possible errors:
	// - ErrDuplicate: if the assignment already exists
	// - ErrNotFound: if the job does not exist
	Assign(ctx context.Context, userID uint64, jobID uint64) error

	// Unassign removes a job from a user
	Unassign(ctx context.Context, userID uint64, jobID uint64) error
}
