package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Config carries the job knobs.
type Config struct {
	// SalaryCooldown is the minimum gap between two successful claims,
	// shared with the ledger service
	SalaryCooldown time.Duration
}

// Service manages job definitions and assignments.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

// NewService creates a new job service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
	}
}

// CreateJob inserts a new job definition.
func (s *Service) CreateJob(ctx context.Context, req usecase.CreateJobRequest) (*entity.Job, error) {
	name := strings.TrimSpace(req.JobName)
	if name == "" {
		return nil, fmt.Errorf("%w: job name is required", errs.ErrInvalidRequest)
	}

	amount, err := decimal.NewFromString(req.DailyAmount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, req.DailyAmount)
	}
	if err := entity.ValidateAmount(amount); err != nil {
		return nil, err
	}

	job := &entity.Job{
		JobName:     name,
		Department:  strings.TrimSpace(req.Department),
		ClassLevel:  req.ClassLevel,
		DailyAmount: amount,
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetJobRepository(txCtx).Create(txCtx, job); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Job created", map[string]any{
		"job_id":       job.ID,
		"job_name":     job.JobName,
		"daily_amount": entity.FormatAmount(job.DailyAmount),
	})
	return job, nil
}

// Assign links a job to a user.
func (s *Service) Assign(ctx context.Context, userID, jobID uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if _, err := s.uow.GetUserRepository(txCtx).GetByID(txCtx, userID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetJobRepository(txCtx).Assign(txCtx, userID, jobID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Job assigned", map[string]any{
		"user_id": userID,
		"job_id":  jobID,
	})
	return nil
}

// Unassign removes a job from a user.
func (s *Service) Unassign(ctx context.Context, userID, jobID uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := s.uow.GetJobRepository(txCtx).Unassign(txCtx, userID, jobID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Job unassigned", map[string]any{
		"user_id": userID,
		"job_id":  jobID,
	})
	return nil
}

// Summary returns the actor's jobs and salary cooldown state. A user
// without jobs gets an empty summary, not an error.
func (s *Service) Summary(ctx context.Context, actorID uint64) (*usecase.JobSummary, error) {
	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.uow.GetJobRepository(ctx).ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	summary := &usecase.JobSummary{
		Jobs:        jobs,
		NextClaimAt: user.NextSalaryClaim(s.cfg.SalaryCooldown),
	}
	if len(jobs) > 0 {
		// ListForUser orders by daily amount descending, job id ascending
		summary.BestJob = jobs[0]
		summary.CanClaim = user.CanClaimSalary(s.timeProvider.Now(), s.cfg.SalaryCooldown)
	}
	return summary, nil
}
