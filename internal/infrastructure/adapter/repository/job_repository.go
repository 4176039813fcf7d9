package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/model"
)

// JobRepository implements the job port using GORM
type JobRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewJobRepository creates a new JobRepository instance
func NewJobRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *JobRepository {
	return &JobRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func jobModelToEntity(m *model.Job) *entity.Job {
	return &entity.Job{
		ID:          m.ID,
		JobName:     m.JobName,
		Department:  m.Department,
		ClassLevel:  m.ClassLevel,
		DailyAmount: m.DailyAmount,
	}
}

// GetHighestPaidForUser returns the user's best-paying assigned job. Ties
// on daily amount break towards the lower job id so the pick is stable.
func (r *JobRepository) GetHighestPaidForUser(ctx context.Context, userID uint64) (*entity.Job, error) {
	var m model.Job
	result := r.db.WithContext(ctx).
		Joins("JOIN user_jobs ON user_jobs.job_id = jobs.id").
		Where("user_jobs.user_id = ?", userID).
		Order("jobs.daily_amount DESC, jobs.id ASC").
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoJob
		}
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrNoJob)
	}
	return jobModelToEntity(&m), nil
}

// ListForUser returns all jobs assigned to the user
func (r *JobRepository) ListForUser(ctx context.Context, userID uint64) ([]*entity.Job, error) {
	var models []model.Job
	result := r.db.WithContext(ctx).
		Joins("JOIN user_jobs ON user_jobs.job_id = jobs.id").
		Where("user_jobs.user_id = ?", userID).
		Order("jobs.daily_amount DESC, jobs.id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrNoJob)
	}

	jobs := make([]*entity.Job, 0, len(models))
	for i := range models {
		jobs = append(jobs, jobModelToEntity(&models[i]))
	}
	return jobs, nil
}

// Create inserts a new job definition
func (r *JobRepository) Create(ctx context.Context, job *entity.Job) error {
	now := r.timeProvider.Now()
	m := model.Job{
		JobName:     job.JobName,
		Department:  job.Department,
		ClassLevel:  job.ClassLevel,
		DailyAmount: job.DailyAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrNotFound)
	}
	job.ID = m.ID
	return nil
}

// Assign links a job to a user
func (r *JobRepository) Assign(ctx context.Context, userID uint64, jobID uint64) error {
	m := model.UserJob{
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: r.timeProvider.Now(),
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		if r.errorClassifier.IsForeignKeyError(result.Error) {
			return errs.ErrNotFound
		}
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrNotFound)
	}
	return nil
}

// Unassign removes a job from a user
func (r *JobRepository) Unassign(ctx context.Context, userID uint64, jobID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&model.UserJob{})
	if result.Error != nil {
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
