package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// ClaimSalary pays out the user's best-paying job into one of their
// accounts, at most once per cooldown window. The user row is locked
// first so two concurrent claims cannot both pass the cooldown check.
func (s *Service) ClaimSalary(ctx context.Context, userID uint64, accountUUID string) (*usecase.SalaryResult, error) {
	var result *usecase.SalaryResult
	err := s.withTx(ctx, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)

		user, err := users.GetByIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}
		if user.IsBanned {
			return errs.ErrForbidden
		}

		now := s.timeProvider.Now()
		if !user.CanClaimSalary(now, s.cfg.SalaryCooldown) {
			return fmt.Errorf("%w: next claim at %s", errs.ErrCooldownActive,
				user.NextSalaryClaim(s.cfg.SalaryCooldown).UTC().Format(time.RFC3339))
		}

		job, err := s.uow.GetJobRepository(txCtx).GetHighestPaidForUser(txCtx, userID)
		if err != nil {
			return err
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		account, err := accounts.GetByUUID(txCtx, accountUUID)
		if err != nil {
			return err
		}
		if !account.IsOwnedBy(userID) {
			return errs.ErrForbidden
		}
		account, err = accounts.GetForUpdate(txCtx, account.ID)
		if err != nil {
			return err
		}
		if err := account.CheckUsable(); err != nil {
			return err
		}

		user.LastSalaryClaim = &now
		if err := users.Update(txCtx, user); err != nil {
			return err
		}

		account.Balance = account.Balance.Add(job.DailyAmount)
		if err := accounts.Update(txCtx, account); err != nil {
			return err
		}

		entry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeSalary,
			nil, &account.ID, job.DailyAmount, "Salary: "+job.JobName)
		entry.Metadata = map[string]any{
			"job_id":   job.ID,
			"job_name": job.JobName,
		}
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		result = &usecase.SalaryResult{
			TransactionUUID: entry.UUID,
			JobName:         job.JobName,
			Amount:          entity.FormatAmount(job.DailyAmount),
			NewBalance:      entity.FormatAmount(account.Balance),
			NextClaimAt:     now.Add(s.cfg.SalaryCooldown),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Salary claimed", map[string]any{
		"user_id":          userID,
		"account_uuid":     accountUUID,
		"job":              result.JobName,
		"amount":           result.Amount,
		"transaction_uuid": result.TransactionUUID,
	})
	return result, nil
}
